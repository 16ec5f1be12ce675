package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurenecom/storefront-backend/pkg/enums"
)

// CartDTO is the transport shape for a device cart.
type CartDTO struct {
	DeviceID    string          `json:"device_id"`
	Items       []Item          `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    enums.Currency  `json:"currency"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func FromCart(c *Cart) *CartDTO {
	if c == nil {
		return nil
	}
	return &CartDTO{
		DeviceID:    c.DeviceID,
		Items:       c.Items,
		TotalItems:  c.TotalItems(),
		TotalAmount: c.TotalAmount(),
		Currency:    c.Currency(),
		UpdatedAt:   c.UpdatedAt,
	}
}
