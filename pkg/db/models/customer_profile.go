package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/pkg/enums"
)

// CustomerProfile holds the business identity behind a user account. Every
// profile starts pending and stays there until an administrator approves it.
type CustomerProfile struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID            `gorm:"column:user_id;type:uuid;not null;uniqueIndex:customer_profiles_user_id_key"`
	FullName  string               `gorm:"column:full_name;not null"`
	Phone     *string              `gorm:"column:phone"`
	Address   *string              `gorm:"column:address"`
	NIF       *string              `gorm:"column:nif"`
	Community *string              `gorm:"column:community"`
	Status    enums.CustomerStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
