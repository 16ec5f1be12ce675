package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/api/middleware"
	"github.com/aurenecom/storefront-backend/internal/orders"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

type stubOrdersService struct {
	order    *orders.OrderDTO
	page     orders.OrdersPageDTO
	err      error
	gotInput orders.CreateInput
}

func (s *stubOrdersService) Create(ctx context.Context, input orders.CreateInput) (*orders.OrderDTO, error) {
	s.gotInput = input
	return s.order, s.err
}

func (s *stubOrdersService) GetByID(ctx context.Context, id uuid.UUID) (*orders.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubOrdersService) ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (orders.OrdersPageDTO, error) {
	return s.page, s.err
}

func (s *stubOrdersService) AdminList(ctx context.Context, filters orders.ListFilters, cursor string, limit int) (orders.OrdersPageDTO, error) {
	return s.page, s.err
}

func (s *stubOrdersService) SetStatus(ctx context.Context, input orders.SetStatusInput) (*orders.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubOrdersService) SetPaymentStatus(ctx context.Context, input orders.SetPaymentStatusInput) (*orders.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubOrdersService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func checkoutBody() string {
	return `{"customer_name":"Jordan Vila","customer_email":"jordan@example.com"}`
}

func TestCheckoutGuest(t *testing.T) {
	svc := &stubOrdersService{order: &orders.OrderDTO{OrderNumber: "ORD-1-000001"}}
	handler := Checkout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody()))
	req = req.WithContext(middleware.WithDeviceID(req.Context(), "device-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput.UserID != nil {
		t.Fatalf("expected guest checkout, got user %s", svc.gotInput.UserID)
	}
	if svc.gotInput.DeviceID != "device-1" {
		t.Fatalf("unexpected device id: %s", svc.gotInput.DeviceID)
	}
}

func TestCheckoutAuthenticated(t *testing.T) {
	svc := &stubOrdersService{order: &orders.OrderDTO{OrderNumber: "ORD-1-000001"}}
	handler := Checkout(svc, nil)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody()))
	ctx := middleware.WithDeviceID(req.Context(), "device-1")
	ctx = middleware.WithUserID(ctx, userID.String())
	req = req.WithContext(ctx)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput.UserID == nil || *svc.gotInput.UserID != userID {
		t.Fatalf("expected order tied to %s, got %v", userID, svc.gotInput.UserID)
	}
}

func TestCheckoutMissingDeviceHeader(t *testing.T) {
	handler := Checkout(&stubOrdersService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutRejectsMissingEmail(t *testing.T) {
	handler := Checkout(&stubOrdersService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"customer_name":"Jordan Vila"}`))
	req = req.WithContext(middleware.WithDeviceID(req.Context(), "device-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := Checkout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(checkoutBody()))
	req = req.WithContext(middleware.WithDeviceID(req.Context(), "device-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
