package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurenecom/storefront-backend/pkg/enums"
)

// Item is one product line in a device cart. Name and price are snapshotted
// at the time the line was added; the catalog can change underneath without
// rewriting carts.
type Item struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Currency     enums.Currency  `json:"currency"`
	Quantity     int             `json:"quantity"`
	UnitsPerBox  int             `json:"units_per_box"`
	ImageURL     *string         `json:"image_url,omitempty"`
}

// Subtotal is price times quantity for this line.
func (i Item) Subtotal() decimal.Decimal {
	return i.PricePerUnit.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the device-keyed cart aggregate.
type Cart struct {
	DeviceID  string    `json:"device_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCart returns an empty cart for the device.
func NewCart(deviceID string) *Cart {
	return &Cart{DeviceID: deviceID, Items: []Item{}}
}

// AddItem merges the line into the cart. An existing line for the same
// product absorbs the quantity and refreshes the snapshot; otherwise the
// line is appended.
func (c *Cart) AddItem(item Item) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			item.Quantity += c.Items[i].Quantity
			c.Items[i] = item
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity for a product line. Zero or negative
// removes the line. It reports whether the product was present.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		return true
	}
	return false
}

// RemoveItem deletes the product line. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.Items = []Item{}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems is the summed quantity across lines.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

// TotalAmount folds line subtotals with decimal arithmetic.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// Currency returns the currency shared by the cart lines. Empty carts
// default to EUR.
func (c *Cart) Currency() enums.Currency {
	if len(c.Items) == 0 {
		return enums.CurrencyEUR
	}
	return c.Items[0].Currency
}
