package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tagihin/backend/internal/domain"
	"github.com/tagihin/backend/internal/service"
	"github.com/tagihin/backend/pkg/payment"
)

// mockGateway implements payment.Gateway for initiator tests.
type mockGateway struct {
	CreateFunc func(ctx context.Context, req payment.TransactionRequest) (*payment.TransactionResponse, error)

	requests []payment.TransactionRequest
}

func (m *mockGateway) CreateTransaction(ctx context.Context, req payment.TransactionRequest) (*payment.TransactionResponse, error) {
	m.requests = append(m.requests, req)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &payment.TransactionResponse{
		Token:       "snap-token",
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v4/redirection/snap-token",
	}, nil
}

func (m *mockGateway) VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	return true
}

func (m *mockGateway) Environment() string { return "sandbox" }

func newPaymentHandler(gw *mockGateway) *PaymentHandler {
	return NewPaymentHandler(gw, service.NewSubscriptionService(&mockStore{}))
}

func postTransaction(t *testing.T, h *PaymentHandler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/transactions", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.CreateTransaction(w, req)
	return w
}

func TestCreateTransactionMissingUserID(t *testing.T) {
	gw := &mockGateway{}
	h := newPaymentHandler(gw)

	w := postTransaction(t, h, []byte(`{"email":"a@b.c"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	if len(gw.requests) != 0 {
		t.Error("gateway must not be called without a userId")
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "userId is required" {
		t.Errorf("unexpected error message: %v", resp)
	}
}

func TestCreateTransactionSuccess(t *testing.T) {
	gw := &mockGateway{}
	h := newPaymentHandler(gw)

	w := postTransaction(t, h, []byte(`{"userId":"u123"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["success"] != true || resp["token"] != "snap-token" {
		t.Errorf("unexpected response: %v", resp)
	}
	if resp["environment"] != "sandbox" {
		t.Errorf("got environment %v", resp["environment"])
	}
	orderID, _ := resp["order_id"].(string)
	if !strings.HasPrefix(orderID, "PREMIUM-u123-") {
		t.Errorf("unexpected order_id %q", orderID)
	}
	if _, err := domain.DecodeOrderID(orderID); err != nil {
		t.Errorf("generated order_id must decode: %v", err)
	}

	// Defaults are filled in before calling the gateway.
	if len(gw.requests) != 1 {
		t.Fatalf("expected one gateway call, got %d", len(gw.requests))
	}
	got := gw.requests[0]
	if got.Email != domain.DefaultEmail {
		t.Errorf("got email %q", got.Email)
	}
	if got.ItemID != "premium-1month" || got.Amount != 49000 {
		t.Errorf("defaults not applied: %+v", got)
	}
	if got.ItemName != "Premium Subscription Tagihin (30 hari)" {
		t.Errorf("got item name %q", got.ItemName)
	}
}

func TestCreateTransactionExplicitFields(t *testing.T) {
	gw := &mockGateway{}
	h := newPaymentHandler(gw)

	w := postTransaction(t, h, []byte(`{"userId":"u9","email":"x@y.z","itemId":"premium-1month","amount":60000}`))
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}
	got := gw.requests[0]
	if got.Email != "x@y.z" || got.Amount != 60000 {
		t.Errorf("explicit fields overridden: %+v", got)
	}
}

func TestCreateTransactionBodyShapes(t *testing.T) {
	inner := `{"userId":"u123"}`
	tests := []struct {
		name string
		body string
	}{
		{"plain object", inner},
		{"double-encoded string", `"{\"userId\":\"u123\"}"`},
		{"envelope", `{"body":"{\"userId\":\"u123\"}"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{}
			h := newPaymentHandler(gw)

			w := postTransaction(t, h, []byte(tt.body))
			if w.Code != http.StatusOK {
				t.Fatalf("got status %d, body %s", w.Code, w.Body.String())
			}
			if len(gw.requests) != 1 {
				t.Fatalf("expected one gateway call, got %d", len(gw.requests))
			}
		})
	}
}

func TestCreateTransactionUpstreamFailure(t *testing.T) {
	gw := &mockGateway{
		CreateFunc: func(ctx context.Context, req payment.TransactionRequest) (*payment.TransactionResponse, error) {
			return nil, &payment.APIError{StatusCode: 401, Body: `{"error_messages":["unauthorized"]}`}
		},
	}
	h := newPaymentHandler(gw)

	w := postTransaction(t, h, []byte(`{"userId":"u123"}`))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", w.Code)
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["success"] != false {
		t.Errorf("expected success=false, got %v", resp)
	}
	if resp["detail"] == "" || resp["detail"] == nil {
		t.Error("expected upstream detail in response")
	}
}
