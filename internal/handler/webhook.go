package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/tagihin/backend/internal/domain"
	"github.com/tagihin/backend/internal/metrics"
	"github.com/tagihin/backend/internal/service"
	"github.com/tagihin/backend/pkg/payment"
)

// WebhookHandler handles the Midtrans payment notification callback.
type WebhookHandler struct {
	gateway payment.Gateway
	subs    *service.SubscriptionService
}

func NewWebhookHandler(gateway payment.Gateway, subs *service.SubscriptionService) *WebhookHandler {
	return &WebhookHandler{
		gateway: gateway,
		subs:    subs,
	}
}

// Health handles GET on the notification endpoint. Midtrans pings it when a
// notification URL is configured.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Webhook is running",
	})
}

// HandleNotification handles POST: it verifies the notification signature,
// then activates premium when the transaction reached a terminal success
// state. Every verified notification is acknowledged with 200 so the
// gateway stops retrying, whether or not it activated anything.
func (h *WebhookHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	metrics.NotificationsReceivedTotal.Inc()

	var n domain.Notification
	if err := DecodeJSON(r, &n); err != nil {
		Error(w, err)
		return
	}

	if err := n.Validate(); err != nil {
		log.Printf("notification missing required fields (order %q)", n.OrderID)
		Error(w, err)
		return
	}

	// Authenticity check comes before any interpretation of the payload.
	if !h.gateway.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey) {
		log.Printf("invalid signature for order %s - possible fraud", n.OrderID)
		metrics.NotificationsRejectedTotal.Inc()
		Error(w, domain.ErrUnauthorized("Invalid signature"))
		return
	}

	if !n.IsSettled() {
		log.Printf("transaction not settled: order=%s status=%s fraud=%s",
			n.OrderID, n.TransactionStatus, n.FraudStatus)
		JSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Notification received but not activated",
			"status":  n.TransactionStatus,
		})
		return
	}

	userID, err := domain.DecodeOrderID(n.OrderID)
	if err != nil {
		log.Printf("invalid order_id format: %s", n.OrderID)
		Error(w, err)
		return
	}

	act, err := h.subs.ActivatePremium(r.Context(), userID)
	if err != nil {
		Error(w, err)
		return
	}
	metrics.PremiumActivationsTotal.Inc()

	JSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"message":           "Premium activated",
		"userId":            userID,
		"orderId":           n.OrderID,
		"premiumUntil":      act.Profile.PremiumUntil.Format(time.RFC3339),
		"transactionStatus": n.TransactionStatus,
		"paymentType":       n.PaymentType,
	})
}
