package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/pkg/enums"
)

// Product is a catalog listing. Prices are stored in minor units; the cart
// converts to major units when it snapshots a line. StockQuantity is
// informational only, order placement never reserves stock.
type Product struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SubcategoryID     uuid.UUID      `gorm:"column:subcategory_id;type:uuid;not null;index:products_subcategory_id_idx"`
	Code              string         `gorm:"column:code;not null;uniqueIndex:products_code_key"`
	Name              string         `gorm:"column:name;not null"`
	Description       *string        `gorm:"column:description"`
	PricePerUnitCents int            `gorm:"column:price_per_unit_cents;not null"`
	OldPriceCents     *int           `gorm:"column:old_price_cents"`
	Currency          enums.Currency `gorm:"column:currency;type:text;not null;default:'EUR'"`
	IsNew             bool           `gorm:"column:is_new;not null;default:false"`
	IsPromotion       bool           `gorm:"column:is_promotion;not null;default:false"`
	ExpiryDate        *time.Time     `gorm:"column:expiry_date"`
	SellByBox         bool           `gorm:"column:sell_by_box;not null;default:false"`
	UnitsInBox        int            `gorm:"column:units_in_box;not null;default:1"`
	MinOrderQuantity  int            `gorm:"column:min_order_quantity;not null;default:1"`
	StockQuantity     int            `gorm:"column:stock_quantity;not null;default:0"`
	ImageURL          *string        `gorm:"column:image_url"`
	DisplayOrder      int            `gorm:"column:display_order;not null;default:0"`
	IsActive          bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
