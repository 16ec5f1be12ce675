package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurenecom/storefront-backend/internal/catalog"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

type productLoader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.ProductDTO, error)
}

// Service exposes device cart operations.
type Service interface {
	GetCart(ctx context.Context, deviceID string) (*CartDTO, error)
	AddItem(ctx context.Context, deviceID string, productID uuid.UUID, quantity int) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, deviceID string, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, deviceID string, productID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, deviceID string) error
}

type service struct {
	store    Store
	products productLoader
}

// NewService builds a cart service backed by the provided store and catalog.
func NewService(store Store, products productLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{store: store, products: products}, nil
}

func (s *service) GetCart(ctx context.Context, deviceID string) (*CartDTO, error) {
	deviceID, err := normalizeDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	cart, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return FromCart(cart), nil
}

func (s *service) AddItem(ctx context.Context, deviceID string, productID uuid.UUID, quantity int) (*CartDTO, error) {
	deviceID, err := normalizeDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity < product.MinOrderQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("minimum order quantity for %s is %d", product.Name, product.MinOrderQuantity))
	}

	cart, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	unitsPerBox := product.UnitsInBox
	if !product.SellByBox {
		unitsPerBox = 1
	}
	cart.AddItem(Item{
		ProductID:    product.ID,
		Code:         product.Code,
		Name:         product.Name,
		PricePerUnit: decimal.New(int64(product.PricePerUnitCents), -2),
		Currency:     product.Currency,
		Quantity:     quantity,
		UnitsPerBox:  unitsPerBox,
		ImageURL:     product.ImageURL,
	})

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return FromCart(cart), nil
}

func (s *service) UpdateQuantity(ctx context.Context, deviceID string, productID uuid.UUID, quantity int) (*CartDTO, error) {
	deviceID, err := normalizeDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	cart, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !cart.UpdateQuantity(productID, quantity) {
		// A non-positive quantity is a removal, and removing an absent line
		// is a no-op so retries stay safe.
		if quantity <= 0 {
			return FromCart(cart), nil
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return FromCart(cart), nil
}

func (s *service) RemoveItem(ctx context.Context, deviceID string, productID uuid.UUID) (*CartDTO, error) {
	deviceID, err := normalizeDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	cart, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(productID)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return FromCart(cart), nil
}

func (s *service) Clear(ctx context.Context, deviceID string) error {
	deviceID, err := normalizeDeviceID(deviceID)
	if err != nil {
		return err
	}
	return s.store.Clear(ctx, deviceID)
}

func normalizeDeviceID(deviceID string) (string, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "device id required")
	}
	return deviceID, nil
}
