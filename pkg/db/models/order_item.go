package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a priced line snapshot. ProductID is a soft reference and is
// nulled when the product is deleted so historical orders keep their names.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index:order_items_order_id_idx"`
	ProductID    *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	ProductName  string          `gorm:"column:product_name;not null"`
	ProductCode  string          `gorm:"column:product_code;not null"`
	Quantity     int             `gorm:"column:quantity;not null"`
	PricePerUnit decimal.Decimal `gorm:"column:price_per_unit;type:numeric(12,2);not null"`
	UnitsPerBox  int             `gorm:"column:units_per_box;not null;default:1"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
