package domain

import (
	"fmt"
	"strings"
	"time"
)

// Midtrans transaction statuses. Settlement and capture are terminal
// success states; everything else leaves the profile untouched.
const (
	StatusSettlement = "settlement"
	StatusCapture    = "capture"
	StatusPending    = "pending"
	StatusDeny       = "deny"
	StatusCancel     = "cancel"
	StatusExpire     = "expire"
)

// Fraud statuses that override an otherwise successful payment.
const (
	FraudChallenge = "challenge"
	FraudDeny      = "deny"
)

// Notification is the payment notification payload Midtrans POSTs to the
// webhook. It is untrusted until the signature is verified.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
}

// Validate checks that all fields needed for signature verification are set.
// PaymentType and TransactionTime are informational only.
func (n *Notification) Validate() error {
	if n.OrderID == "" || n.StatusCode == "" || n.GrossAmount == "" || n.SignatureKey == "" {
		return ErrBadRequest("Invalid notification format")
	}
	return nil
}

// IsSettled reports whether the notification represents a completed purchase:
// a terminal transaction status that has not been flagged by fraud detection.
func (n *Notification) IsSettled() bool {
	success := n.TransactionStatus == StatusSettlement || n.TransactionStatus == StatusCapture
	fraud := n.FraudStatus == FraudChallenge || n.FraudStatus == FraudDeny
	return success && !fraud
}

// NewOrderID builds an order identifier in the PREMIUM-{userId}-{millis}
// format. The user identity is recovered from it when the notification
// arrives.
func NewOrderID(userID string, now time.Time) string {
	return fmt.Sprintf("PREMIUM-%s-%d", userID, now.UnixMilli())
}

// DecodeOrderID extracts the user ID from an order identifier. The order ID
// must have at least three dash-separated segments; the second one is the
// user ID.
func DecodeOrderID(orderID string) (string, error) {
	parts := strings.Split(orderID, "-")
	if len(parts) < 3 {
		return "", ErrBadRequest("Invalid order_id format")
	}
	return parts[1], nil
}
