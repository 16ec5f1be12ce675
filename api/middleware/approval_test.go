package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/internal/customers"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

type stubStatusReader struct {
	status enums.CustomerStatus
	err    error
}

func (s *stubStatusReader) StatusByUserID(ctx context.Context, userID uuid.UUID) (enums.CustomerStatus, error) {
	return s.status, s.err
}

func runApprovalGate(t *testing.T, reader *stubStatusReader, userID string) *httptest.ResponseRecorder {
	t.Helper()

	resolver := customers.NewResolver(reader, time.Second, nil)
	handler := RequireApproved(resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	if userID != "" {
		req = req.WithContext(WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeGateError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return payload.Error.Code
}

func TestRequireApproved_GuestPassesThrough(t *testing.T) {
	rec := runApprovalGate(t, &stubStatusReader{err: errors.New("should not be called")}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireApproved_ApprovedPasses(t *testing.T) {
	rec := runApprovalGate(t, &stubStatusReader{status: enums.CustomerStatusApproved}, uuid.NewString())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireApproved_PendingForbidden(t *testing.T) {
	rec := runApprovalGate(t, &stubStatusReader{status: enums.CustomerStatusPending}, uuid.NewString())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if code := decodeGateError(t, rec); code != string(pkgerrors.CodeForbidden) {
		t.Fatalf("unexpected code: %s", code)
	}
}

func TestRequireApproved_UnreadableStatusUnauthorized(t *testing.T) {
	rec := runApprovalGate(t, &stubStatusReader{err: errors.New("connection refused")}, uuid.NewString())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown status, got %d", rec.Code)
	}
	if code := decodeGateError(t, rec); code != string(pkgerrors.CodeUnauthorized) {
		t.Fatalf("unexpected code: %s", code)
	}
}
