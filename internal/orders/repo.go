package orders

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	"github.com/aurenecom/storefront-backend/pkg/pagination"
)

// ListFilters narrows the admin order listing.
type ListFilters struct {
	Status        *enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
	UserID        *uuid.UUID
}

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filters ListFilters, cursor string, limit int) (OrdersPageDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// CreateOrder inserts the order header only. Lines are written separately
// with CreateOrderItems.
func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Omit("Items").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns a cursor-paginated page of orders, newest first.
func (r *repository) List(ctx context.Context, filters ListFilters, cursor string, limit int) (OrdersPageDTO, error) {
	normalized := pagination.NormalizeLimit(limit)
	buffered := pagination.LimitWithBuffer(limit)

	decoded, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return OrdersPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Preload("Items").
		Order("created_at DESC").
		Order("id DESC").
		Limit(buffered)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filters.PaymentStatus)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if decoded != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decoded.CreatedAt, decoded.CreatedAt, decoded.ID)
	}

	var rows []models.Order
	if err := query.Find(&rows).Error; err != nil {
		return OrdersPageDTO{}, err
	}

	page := OrdersPageDTO{Orders: make([]OrderDTO, 0, len(rows))}
	hasMore := len(rows) > normalized
	if hasMore {
		rows = rows[:normalized]
	}
	for i := range rows {
		page.Orders = append(page.Orders, *FromModel(&rows[i]))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	return page, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("payment_status", status).Error
}

// Delete removes the order header; lines follow via the FK cascade.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id).Error
}
