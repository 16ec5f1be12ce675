package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurenecom/storefront-backend/pkg/enums"
)

// Order represents one checkout completion. The contact snapshot is copied
// from the cart at creation time so the order survives later profile edits.
// OrderNumber is human-facing and indexed but not unique by construction.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string              `gorm:"column:order_number;not null;index:orders_order_number_idx"`
	UserID          *uuid.UUID          `gorm:"column:user_id;type:uuid;index:orders_user_id_idx"`
	CustomerName    string              `gorm:"column:customer_name;not null"`
	CustomerEmail   string              `gorm:"column:customer_email;not null"`
	CustomerPhone   *string             `gorm:"column:customer_phone"`
	CustomerAddress *string             `gorm:"column:customer_address"`
	TotalAmount     decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Currency        enums.Currency      `gorm:"column:currency;type:text;not null;default:'EUR'"`
	Status          enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'confirmed'"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'not_applicable'"`
	Notes           *string             `gorm:"column:notes"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
