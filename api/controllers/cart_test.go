package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/api/middleware"
	cartsvc "github.com/aurenecom/storefront-backend/internal/cart"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

type stubCartService struct {
	cart   *cartsvc.CartDTO
	err    error
	gotAdd struct {
		deviceID  string
		productID uuid.UUID
		quantity  int
	}
}

func (s *stubCartService) GetCart(ctx context.Context, deviceID string) (*cartsvc.CartDTO, error) {
	return s.cart, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, deviceID string, productID uuid.UUID, quantity int) (*cartsvc.CartDTO, error) {
	s.gotAdd.deviceID = deviceID
	s.gotAdd.productID = productID
	s.gotAdd.quantity = quantity
	return s.cart, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, deviceID string, productID uuid.UUID, quantity int) (*cartsvc.CartDTO, error) {
	return s.cart, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, deviceID string, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	return s.cart, s.err
}

func (s *stubCartService) Clear(ctx context.Context, deviceID string) error {
	return s.err
}

func TestCartGetSuccess(t *testing.T) {
	cart := &cartsvc.CartDTO{DeviceID: "device-1"}
	handler := CartGet(&stubCartService{cart: cart}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithDeviceID(req.Context(), "device-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.DeviceID != "device-1" {
		t.Fatalf("unexpected device id: %s", envelope.Data.DeviceID)
	}
}

func TestCartGetMissingDeviceHeader(t *testing.T) {
	handler := CartGet(&stubCartService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemPassesInput(t *testing.T) {
	svc := &stubCartService{cart: &cartsvc.CartDTO{DeviceID: "device-1"}}
	handler := CartAddItem(svc, nil)

	productID := uuid.New()
	body := `{"product_id":"` + productID.String() + `","quantity":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req = req.WithContext(middleware.WithDeviceID(req.Context(), "device-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotAdd.deviceID != "device-1" || svc.gotAdd.productID != productID || svc.gotAdd.quantity != 3 {
		t.Fatalf("unexpected add input: %+v", svc.gotAdd)
	}
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	body := `{"product_id":"` + uuid.NewString() + `","quantity":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req = req.WithContext(middleware.WithDeviceID(req.Context(), "device-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartGetServiceError(t *testing.T) {
	handler := CartGet(&stubCartService{err: pkgerrors.New(pkgerrors.CodeDependency, "redis down")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithDeviceID(req.Context(), "device-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d", resp.Code)
	}
}

func TestCartGetNilService(t *testing.T) {
	handler := CartGet(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
