package favorites

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/internal/catalog"
	"github.com/aurenecom/storefront-backend/pkg/db/models"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

type productFinder interface {
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// FavoritesDTO is the transport shape for a device favorites list.
type FavoritesDTO struct {
	DeviceID   string               `json:"device_id"`
	ProductIDs []uuid.UUID          `json:"product_ids"`
	Products   []catalog.ProductDTO `json:"products,omitempty"`
}

// Service exposes device favorites operations.
type Service interface {
	List(ctx context.Context, deviceID string) (*FavoritesDTO, error)
	Add(ctx context.Context, deviceID string, productID uuid.UUID) (*FavoritesDTO, error)
	Remove(ctx context.Context, deviceID string, productID uuid.UUID) (*FavoritesDTO, error)
	Toggle(ctx context.Context, deviceID string, productID uuid.UUID) (*FavoritesDTO, bool, error)
	Clear(ctx context.Context, deviceID string) error
}

type service struct {
	store    Store
	products productFinder
}

// NewService builds a favorites service backed by the provided store.
func NewService(store Store, products productFinder) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("favorites store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{store: store, products: products}, nil
}

// List returns the favorites hydrated with their active catalog rows. Ids
// pointing at deleted or deactivated products stay in the set but get no
// product payload.
func (s *service) List(ctx context.Context, deviceID string) (*FavoritesDTO, error) {
	deviceID, err := normalizeDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	ids, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, deviceID, ids)
}

func (s *service) Add(ctx context.Context, deviceID string, productID uuid.UUID) (*FavoritesDTO, error) {
	deviceID, err := normalizeDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	ids, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !contains(ids, productID) {
		ids = append(ids, productID)
		if err := s.store.Save(ctx, deviceID, ids); err != nil {
			return nil, err
		}
	}
	return s.hydrate(ctx, deviceID, ids)
}

func (s *service) Remove(ctx context.Context, deviceID string, productID uuid.UUID) (*FavoritesDTO, error) {
	deviceID, err := normalizeDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	ids, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	filtered := remove(ids, productID)
	if len(filtered) != len(ids) {
		if err := s.store.Save(ctx, deviceID, filtered); err != nil {
			return nil, err
		}
	}
	return s.hydrate(ctx, deviceID, filtered)
}

// Toggle flips membership and reports whether the product is now a favorite.
func (s *service) Toggle(ctx context.Context, deviceID string, productID uuid.UUID) (*FavoritesDTO, bool, error) {
	deviceID, err := normalizeDeviceID(deviceID)
	if err != nil {
		return nil, false, err
	}
	if productID == uuid.Nil {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	ids, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return nil, false, err
	}

	added := false
	if contains(ids, productID) {
		ids = remove(ids, productID)
	} else {
		ids = append(ids, productID)
		added = true
	}
	if err := s.store.Save(ctx, deviceID, ids); err != nil {
		return nil, false, err
	}
	dto, err := s.hydrate(ctx, deviceID, ids)
	if err != nil {
		return nil, false, err
	}
	return dto, added, nil
}

func (s *service) Clear(ctx context.Context, deviceID string) error {
	deviceID, err := normalizeDeviceID(deviceID)
	if err != nil {
		return err
	}
	return s.store.Clear(ctx, deviceID)
}

func (s *service) hydrate(ctx context.Context, deviceID string, ids []uuid.UUID) (*FavoritesDTO, error) {
	dto := &FavoritesDTO{DeviceID: deviceID, ProductIDs: ids}
	if len(ids) == 0 {
		return dto, nil
	}
	products, err := s.products.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorite products")
	}
	for i := range products {
		if !products[i].IsActive {
			continue
		}
		dto.Products = append(dto.Products, *catalog.ProductFromModel(&products[i]))
	}
	return dto, nil
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func remove(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	filtered := make([]uuid.UUID, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}

func normalizeDeviceID(deviceID string) (string, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "device id required")
	}
	return deviceID, nil
}
