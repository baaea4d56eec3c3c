package payment

import (
	"context"
	"fmt"
)

// TransactionRequest captures the information required to open a checkout
// session with the gateway.
type TransactionRequest struct {
	OrderID  string
	Email    string
	ItemID   string
	ItemName string
	Amount   int64
}

// TransactionResponse is the payer-facing checkout session returned by the
// gateway.
type TransactionResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Gateway abstracts the operations required from the payment provider.
type Gateway interface {
	// CreateTransaction creates a checkout session (token + redirect URL).
	CreateTransaction(ctx context.Context, req TransactionRequest) (*TransactionResponse, error)
	// VerifySignature verifies a webhook notification signature.
	VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool
	// Environment returns "sandbox" or "production".
	Environment() string
}

// APIError is a non-2xx response from the gateway.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Body)
}

// MockGateway is a dummy implementation for testing.
type MockGateway struct {
	FailSignature bool
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) CreateTransaction(ctx context.Context, req TransactionRequest) (*TransactionResponse, error) {
	return &TransactionResponse{
		Token:       "mock-token",
		RedirectURL: "https://example.com/pay?order_id=" + req.OrderID,
	}, nil
}

func (g *MockGateway) VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	return !g.FailSignature
}

func (g *MockGateway) Environment() string {
	return "sandbox"
}
