package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
)

// OrderDTO is the transport shape for an order with its lines.
type OrderDTO struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	UserID          *uuid.UUID          `json:"user_id,omitempty"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   string              `json:"customer_email"`
	CustomerPhone   *string             `json:"customer_phone,omitempty"`
	CustomerAddress *string             `json:"customer_address,omitempty"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Currency        enums.Currency      `json:"currency"`
	Status          enums.OrderStatus   `json:"status"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	Notes           *string             `json:"notes,omitempty"`
	Items           []OrderItemDTO      `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderItemDTO is one priced line of an order.
type OrderItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    *uuid.UUID      `json:"product_id,omitempty"`
	ProductName  string          `json:"product_name"`
	ProductCode  string          `json:"product_code"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	UnitsPerBox  int             `json:"units_per_box"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// OrdersPageDTO is a cursor-paginated order listing.
type OrdersPageDTO struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		TotalAmount:     o.TotalAmount,
		Currency:        o.Currency,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		Notes:           o.Notes,
		Items:           make([]OrderItemDTO, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for i := range o.Items {
		dto.Items = append(dto.Items, *ItemFromModel(&o.Items[i]))
	}
	return dto
}

func ItemFromModel(item *models.OrderItem) *OrderItemDTO {
	if item == nil {
		return nil
	}
	return &OrderItemDTO{
		ID:           item.ID,
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		ProductCode:  item.ProductCode,
		Quantity:     item.Quantity,
		PricePerUnit: item.PricePerUnit,
		UnitsPerBox:  item.UnitsPerBox,
		Subtotal:     item.Subtotal,
	}
}
