package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/internal/cart"
	"github.com/aurenecom/storefront-backend/internal/customers"
	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/logger"
	"github.com/aurenecom/storefront-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type cartStore interface {
	Load(ctx context.Context, deviceID string) (*cart.Cart, error)
	Clear(ctx context.Context, deviceID string) error
}

type approvalResolver interface {
	Resolve(ctx context.Context, userID *uuid.UUID) customers.Resolution
}

// notifier fans an accepted order out by email. Both sends are best effort.
type notifier interface {
	SendOrderConfirmation(ctx context.Context, order *OrderDTO) error
	SendCompanyAlert(ctx context.Context, order *OrderDTO) error
}

// Service exposes order placement and back-office order management.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*OrderDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (OrdersPageDTO, error)
	AdminList(ctx context.Context, filters ListFilters, cursor string, limit int) (OrdersPageDTO, error)
	SetStatus(ctx context.Context, input SetStatusInput) (*OrderDTO, error)
	SetPaymentStatus(ctx context.Context, input SetPaymentStatusInput) (*OrderDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateInput captures one checkout attempt. UserID is nil for guests.
type CreateInput struct {
	DeviceID        string
	UserID          *uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	CustomerAddress *string
	Notes           *string
}

// SetStatusInput carries an admin order status transition.
type SetStatusInput struct {
	OrderID     uuid.UUID
	Status      enums.OrderStatus
	ActorUserID uuid.UUID
}

// SetPaymentStatusInput carries an admin payment status transition.
type SetPaymentStatusInput struct {
	OrderID     uuid.UUID
	Status      enums.PaymentStatus
	ActorUserID uuid.UUID
}

// OrderCreatedEvent is the outbox payload for order.created.
type OrderCreatedEvent struct {
	OrderID       uuid.UUID      `json:"order_id"`
	OrderNumber   string         `json:"order_number"`
	UserID        *uuid.UUID     `json:"user_id,omitempty"`
	CustomerName  string         `json:"customer_name"`
	CustomerEmail string         `json:"customer_email"`
	TotalAmount   string         `json:"total_amount"`
	Currency      enums.Currency `json:"currency"`
	ItemCount     int            `json:"item_count"`
}

// OrderStatusChangedEvent is the outbox payload for order.status_changed.
type OrderStatusChangedEvent struct {
	OrderID     uuid.UUID         `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	UserID      *uuid.UUID        `json:"user_id,omitempty"`
	OldStatus   enums.OrderStatus `json:"old_status"`
	NewStatus   enums.OrderStatus `json:"new_status"`
}

type service struct {
	repo     Repository
	carts    cartStore
	approval approvalResolver
	tx       txRunner
	outbox   outboxPublisher
	mail     notifier
	logg     *logger.Logger
}

// NewService builds an orders service with the provided stack.
func NewService(repo Repository, carts cartStore, approval approvalResolver, tx txRunner, outboxSvc outboxPublisher, mail notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if approval == nil {
		return nil, fmt.Errorf("approval resolver required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		repo:     repo,
		carts:    carts,
		approval: approval,
		tx:       tx,
		outbox:   outboxSvc,
		mail:     mail,
		logg:     logg,
	}, nil
}

// Create turns the device cart into an order. The header is written first
// and the lines after it; a line failure aborts checkout but the header row
// stays behind for reconciliation. Email and the order.created event fire
// after the order is durable and never fail the checkout. The cart is
// cleared only on success.
func (s *service) Create(ctx context.Context, input CreateInput) (*OrderDTO, error) {
	deviceID := strings.TrimSpace(input.DeviceID)
	if deviceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device id required")
	}
	// An empty cart is reported before any identity problem.
	deviceCart, err := s.carts.Load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if deviceCart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	name := strings.TrimSpace(input.CustomerName)
	email := strings.ToLower(strings.TrimSpace(input.CustomerEmail))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid customer email required")
	}

	if input.UserID != nil {
		resolution := s.approval.Resolve(ctx, input.UserID)
		if !resolution.IsApproved() {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only approved customers may order")
		}
	}

	order := &models.Order{
		OrderNumber:     NewOrderNumber(nowUTC()),
		UserID:          input.UserID,
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		TotalAmount:     deviceCart.TotalAmount(),
		Currency:        deviceCart.Currency(),
		Status:          enums.OrderStatusConfirmed,
		PaymentStatus:   enums.PaymentStatusNotApplicable,
		Notes:           input.Notes,
	}
	if _, err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	items := make([]models.OrderItem, 0, len(deviceCart.Items))
	for _, line := range deviceCart.Items {
		productID := line.ProductID
		items = append(items, models.OrderItem{
			OrderID:      order.ID,
			ProductID:    &productID,
			ProductName:  line.Name,
			ProductCode:  line.Code,
			Quantity:     line.Quantity,
			PricePerUnit: line.PricePerUnit,
			UnitsPerBox:  line.UnitsPerBox,
			Subtotal:     line.Subtotal(),
		})
	}
	if err := s.repo.CreateOrderItems(ctx, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
	}
	order.Items = items

	dto := FromModel(order)
	s.runPostCreateHooks(ctx, dto)

	if err := s.carts.Clear(ctx, deviceID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "failed to clear cart after checkout: "+err.Error())
	}
	return dto, nil
}

// runPostCreateHooks fires the order.created event and both emails. Hook
// failures are combined, logged and swallowed; the order already exists.
func (s *service) runPostCreateHooks(ctx context.Context, order *OrderDTO) {
	var hookErr error

	emitErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         actorFor(order.UserID),
			Data: OrderCreatedEvent{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				UserID:        order.UserID,
				CustomerName:  order.CustomerName,
				CustomerEmail: order.CustomerEmail,
				TotalAmount:   order.TotalAmount.StringFixed(2),
				Currency:      order.Currency,
				ItemCount:     len(order.Items),
			},
		})
	})
	hookErr = multierr.Append(hookErr, emitErr)

	if s.mail != nil {
		hookErr = multierr.Append(hookErr, s.mail.SendOrderConfirmation(ctx, order))
		hookErr = multierr.Append(hookErr, s.mail.SendCompanyAlert(ctx, order))
	}

	if hookErr != nil && s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
		})
		s.logg.Warn(logCtx, "order post-create hooks failed: "+hookErr.Error())
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return FromModel(order), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (OrdersPageDTO, error) {
	if userID == uuid.Nil {
		return OrdersPageDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.list(ctx, ListFilters{UserID: &userID}, cursor, limit)
}

func (s *service) AdminList(ctx context.Context, filters ListFilters, cursor string, limit int) (OrdersPageDTO, error) {
	return s.list(ctx, filters, cursor, limit)
}

func (s *service) list(ctx context.Context, filters ListFilters, cursor string, limit int) (OrdersPageDTO, error) {
	page, err := s.repo.List(ctx, filters, cursor, limit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrdersPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
		}
		return OrdersPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return page, nil
}

func (s *service) SetStatus(ctx context.Context, input SetStatusInput) (*OrderDTO, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", input.Status))
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		oldStatus := order.Status
		if oldStatus == input.Status {
			updated = order
			return nil
		}

		if err := repo.UpdateStatus(ctx, order.ID, input.Status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		order.Status = input.Status
		updated = order

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         adminActor(input.ActorUserID),
			Data: OrderStatusChangedEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				UserID:      order.UserID,
				OldStatus:   oldStatus,
				NewStatus:   input.Status,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) SetPaymentStatus(ctx context.Context, input SetPaymentStatusInput) (*OrderDTO, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment status %q", input.Status))
	}

	order, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if err := s.repo.UpdatePaymentStatus(ctx, order.ID, input.Status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment status")
	}
	order.PaymentStatus = input.Status
	return FromModel(order), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

func actorFor(userID *uuid.UUID) *outbox.ActorRef {
	if userID == nil || *userID == uuid.Nil {
		return nil
	}
	return &outbox.ActorRef{UserID: *userID, Role: string(enums.UserRoleCustomer)}
}

func adminActor(userID uuid.UUID) *outbox.ActorRef {
	if userID == uuid.Nil {
		return nil
	}
	return &outbox.ActorRef{UserID: userID, Role: string(enums.UserRoleAdmin)}
}
