package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/pkg/db/models"
	"github.com/aurenecom/storefront-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL,
  user_id TEXT,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT,
  customer_address TEXT,
  total_amount NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'EUR',
  status TEXT NOT NULL DEFAULT 'confirmed',
  payment_status TEXT NOT NULL DEFAULT 'not_applicable',
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE INDEX IF NOT EXISTS orders_order_number_idx ON orders(order_number);
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT,
  product_name TEXT NOT NULL,
  product_code TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price_per_unit NUMERIC NOT NULL,
  units_per_box INTEGER NOT NULL DEFAULT 1,
  subtotal NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, conn.Exec(schema).Error)
	for _, table := range []string{"order_items", "orders"} {
		require.NoError(t, conn.Exec("DELETE FROM "+table).Error)
	}
	return conn
}

func mustCreateOrder(t *testing.T, repo Repository, userID *uuid.UUID, lines int) *models.Order {
	t.Helper()
	order, err := repo.CreateOrder(context.Background(), &models.Order{
		OrderNumber:   NewOrderNumber(time.Now()),
		UserID:        userID,
		CustomerName:  "Ana Serra",
		CustomerEmail: "ana@example.com",
		TotalAmount:   decimal.RequireFromString("12.30"),
		Currency:      enums.CurrencyEUR,
		Status:        enums.OrderStatusConfirmed,
		PaymentStatus: enums.PaymentStatusNotApplicable,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	items := make([]models.OrderItem, 0, lines)
	for i := 0; i < lines; i++ {
		productID := uuid.New()
		items = append(items, models.OrderItem{
			OrderID:      order.ID,
			ProductID:    &productID,
			ProductName:  fmt.Sprintf("Product %d", i),
			ProductCode:  fmt.Sprintf("SKU-%d", i),
			Quantity:     2,
			PricePerUnit: decimal.RequireFromString("2.05"),
			UnitsPerBox:  1,
			Subtotal:     decimal.RequireFromString("4.10"),
		})
	}
	if err := repo.CreateOrderItems(context.Background(), items); err != nil {
		t.Fatalf("create order items: %v", err)
	}
	return order
}

func TestFindByIDLoadsItems(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	created := mustCreateOrder(t, repo, nil, 3)

	order, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find order: %v", err)
	}
	if len(order.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(order.Items))
	}
	if order.OrderNumber != created.OrderNumber {
		t.Fatalf("expected order number %s, got %s", created.OrderNumber, order.OrderNumber)
	}
}

func TestDeleteCascadesToItems(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	created := mustCreateOrder(t, repo, nil, 2)

	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}

	var count int64
	if err := conn.Model(&models.OrderItem{}).Where("order_id = ?", created.ID).Count(&count).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected items removed with order, got %d", count)
	}
}

func TestListFiltersByUser(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)

	userID := uuid.New()
	mine := mustCreateOrder(t, repo, &userID, 1)
	mustCreateOrder(t, repo, nil, 1)

	page, err := repo.List(context.Background(), ListFilters{UserID: &userID}, "", 10)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(page.Orders) != 1 || page.Orders[0].ID != mine.ID {
		t.Fatalf("expected only the user's order, got %d rows", len(page.Orders))
	}
}

func TestDuplicateOrderNumbersAllowed(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	first := mustCreateOrder(t, repo, nil, 0)
	_, err := repo.CreateOrder(context.Background(), &models.Order{
		OrderNumber:   first.OrderNumber,
		CustomerName:  "Ana Serra",
		CustomerEmail: "ana@example.com",
		TotalAmount:   decimal.RequireFromString("1.00"),
		Currency:      enums.CurrencyEUR,
		Status:        enums.OrderStatusConfirmed,
		PaymentStatus: enums.PaymentStatusNotApplicable,
	})
	if err != nil {
		t.Fatalf("expected duplicate order number to be accepted, got %v", err)
	}
}
