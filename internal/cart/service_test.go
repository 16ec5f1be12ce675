package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/aurenecom/storefront-backend/internal/catalog"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

type memoryKV struct {
	values map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	return nil
}

func (m *memoryKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryKV) CartKey(deviceID string) string {
	return "auren:cart:" + deviceID
}

type stubProducts struct {
	products map[uuid.UUID]*catalog.ProductDTO
}

func (s stubProducts) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.ProductDTO, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func newCartService(t *testing.T, products map[uuid.UUID]*catalog.ProductDTO) Service {
	t.Helper()
	store, err := NewRedisStore(newMemoryKV(), time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	svc, err := NewService(store, stubProducts{products: products})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func catalogProduct(price int, moq int) *catalog.ProductDTO {
	return &catalog.ProductDTO{
		ID:                uuid.New(),
		Code:              "SKU-9",
		Name:              "Olive Oil",
		PricePerUnitCents: price,
		Currency:          enums.CurrencyEUR,
		UnitsInBox:        6,
		SellByBox:         true,
		MinOrderQuantity:  moq,
		IsActive:          true,
	}
}

func TestServiceAddItemPersists(t *testing.T) {
	product := catalogProduct(450, 1)
	svc := newCartService(t, map[uuid.UUID]*catalog.ProductDTO{product.ID: product})

	dto, err := svc.AddItem(context.Background(), "device-1", product.ID, 2)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if dto.TotalItems != 2 {
		t.Fatalf("expected 2 items, got %d", dto.TotalItems)
	}
	if !dto.TotalAmount.Equal(decimal.RequireFromString("9.00")) {
		t.Fatalf("expected total 9.00, got %s", dto.TotalAmount)
	}
	if dto.Items[0].UnitsPerBox != 6 {
		t.Fatalf("expected box size snapshot, got %d", dto.Items[0].UnitsPerBox)
	}

	reloaded, err := svc.GetCart(context.Background(), "device-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if reloaded.TotalItems != 2 {
		t.Fatalf("expected persisted cart, got %d items", reloaded.TotalItems)
	}
}

func TestServiceAddItemEnforcesMinimum(t *testing.T) {
	product := catalogProduct(450, 5)
	svc := newCartService(t, map[uuid.UUID]*catalog.ProductDTO{product.ID: product})

	_, err := svc.AddItem(context.Background(), "device-1", product.ID, 2)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	svc := newCartService(t, map[uuid.UUID]*catalog.ProductDTO{})

	_, err := svc.AddItem(context.Background(), "device-1", uuid.New(), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceUpdateQuantityRemoves(t *testing.T) {
	product := catalogProduct(450, 1)
	svc := newCartService(t, map[uuid.UUID]*catalog.ProductDTO{product.ID: product})

	if _, err := svc.AddItem(context.Background(), "device-1", product.ID, 2); err != nil {
		t.Fatalf("add item: %v", err)
	}
	dto, err := svc.UpdateQuantity(context.Background(), "device-1", product.ID, -1)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected line removed, got %d", len(dto.Items))
	}
}

func TestServiceUpdateQuantityZeroRetriesAsNoOp(t *testing.T) {
	product := catalogProduct(450, 1)
	svc := newCartService(t, map[uuid.UUID]*catalog.ProductDTO{product.ID: product})

	if _, err := svc.AddItem(context.Background(), "device-1", product.ID, 2); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := svc.UpdateQuantity(context.Background(), "device-1", product.ID, 0); err != nil {
		t.Fatalf("first update: %v", err)
	}
	dto, err := svc.UpdateQuantity(context.Background(), "device-1", product.ID, 0)
	if err != nil {
		t.Fatalf("retried update should be a no-op, got %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(dto.Items))
	}
}

func TestServiceUpdateQuantityMissingProduct(t *testing.T) {
	svc := newCartService(t, map[uuid.UUID]*catalog.ProductDTO{})

	_, err := svc.UpdateQuantity(context.Background(), "device-1", uuid.New(), 3)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceClear(t *testing.T) {
	product := catalogProduct(450, 1)
	svc := newCartService(t, map[uuid.UUID]*catalog.ProductDTO{product.ID: product})

	if _, err := svc.AddItem(context.Background(), "device-1", product.ID, 2); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := svc.Clear(context.Background(), "device-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	dto, err := svc.GetCart(context.Background(), "device-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if !dto.TotalAmount.Equal(decimal.Zero) || len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", dto)
	}
}

func TestServiceRequiresDeviceID(t *testing.T) {
	svc := newCartService(t, map[uuid.UUID]*catalog.ProductDTO{})

	_, err := svc.GetCart(context.Background(), "  ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
