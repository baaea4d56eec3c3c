package payment

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	sandboxBaseURL    = "https://app.sandbox.midtrans.com"
	productionBaseURL = "https://app.midtrans.com"
)

// enabledPayments is the fixed catalog of payment instruments offered at
// checkout.
var enabledPayments = []string{
	"gopay",
	"shopeepay",
	"bca_va",
	"bni_va",
	"bri_va",
	"permata_va",
	"other_va",
	"qris",
}

// MidtransGateway talks to the Midtrans Snap API.
type MidtransGateway struct {
	serverKey  string
	baseURL    string
	production bool
	client     *http.Client
}

// NewMidtransGateway creates a gateway for the sandbox or production
// environment.
func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	baseURL := sandboxBaseURL
	if production {
		baseURL = productionBaseURL
	}
	return &MidtransGateway{
		serverKey:  serverKey,
		baseURL:    baseURL,
		production: production,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Environment returns "sandbox" or "production".
func (g *MidtransGateway) Environment() string {
	if g.production {
		return "production"
	}
	return "sandbox"
}

type snapTransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type snapCustomerDetails struct {
	Email string `json:"email"`
}

type snapItemDetail struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type snapRequest struct {
	TransactionDetails snapTransactionDetails `json:"transaction_details"`
	CustomerDetails    snapCustomerDetails    `json:"customer_details"`
	ItemDetails        []snapItemDetail       `json:"item_details"`
	EnabledPayments    []string               `json:"enabled_payments"`
}

// CreateTransaction calls the Snap transaction-creation endpoint and returns
// the checkout token and redirect URL. A non-2xx response is returned as an
// *APIError carrying the upstream status and raw body.
func (g *MidtransGateway) CreateTransaction(ctx context.Context, req TransactionRequest) (*TransactionResponse, error) {
	payload := snapRequest{
		TransactionDetails: snapTransactionDetails{
			OrderID:     req.OrderID,
			GrossAmount: req.Amount,
		},
		CustomerDetails: snapCustomerDetails{Email: req.Email},
		ItemDetails: []snapItemDetail{
			{
				ID:       req.ItemID,
				Price:    req.Amount,
				Quantity: 1,
				Name:     req.ItemName,
			},
		},
		EnabledPayments: enabledPayments,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snap request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/snap/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build snap request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Basic "+basicAuth(g.serverKey))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("snap request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snap response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var snap TransactionResponse
	if err := json.Unmarshal(respBody, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snap response: %w", err)
	}
	return &snap, nil
}

// VerifySignature checks a notification signature against the one computed
// from the payload and server key. Midtrans requires an exact match.
func (g *MidtransGateway) VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	return Signature(orderID, statusCode, grossAmount, g.serverKey) == signatureKey
}

// Signature computes the Midtrans notification signature:
// hex(sha512(order_id + status_code + gross_amount + serverKey)).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// basicAuth builds the Snap API credential: base64 of "serverKey:".
func basicAuth(serverKey string) string {
	return base64.StdEncoding.EncodeToString([]byte(serverKey + ":"))
}

// baseURLOverride is used by tests to point the gateway at a local server.
func (g *MidtransGateway) baseURLOverride(url string) {
	g.baseURL = url
}
