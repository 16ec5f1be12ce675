package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/pkg/enums"
)

// PushToken is a device registration for push delivery. UserID is nullable
// because tokens can be registered before the device signs in and claimed
// afterwards.
type PushToken struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Token     string             `gorm:"column:token;not null;uniqueIndex:push_tokens_token_key"`
	Platform  enums.PushPlatform `gorm:"column:platform;type:text;not null"`
	UserID    *uuid.UUID         `gorm:"column:user_id;type:uuid;index:push_tokens_user_id_idx"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
