package handler

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tagihin/backend/internal/domain"
	"github.com/tagihin/backend/internal/metrics"
	"github.com/tagihin/backend/internal/service"
	"github.com/tagihin/backend/pkg/payment"
)

// PaymentHandler handles checkout transaction creation.
type PaymentHandler struct {
	gateway  payment.Gateway
	subs     *service.SubscriptionService
	validate *validator.Validate
}

func NewPaymentHandler(gateway payment.Gateway, subs *service.SubscriptionService) *PaymentHandler {
	return &PaymentHandler{
		gateway:  gateway,
		subs:     subs,
		validate: validator.New(),
	}
}

// CreateTransactionRequest is the client checkout request. Everything but
// userId has a default.
type CreateTransactionRequest struct {
	UserID string `json:"userId" validate:"required"`
	Email  string `json:"email"`
	ItemID string `json:"itemId"`
	Amount int64  `json:"amount"`
}

func (req *CreateTransactionRequest) applyDefaults() {
	if req.Email == "" {
		req.Email = domain.DefaultEmail
	}
	if req.ItemID == "" {
		req.ItemID = domain.AvailableItems()[0].ID
	}
	if req.Amount == 0 {
		req.Amount = domain.GetItem(req.ItemID).Price
	}
}

// CreateTransaction handles POST /api/payment/transactions. It opens a Snap
// checkout session and returns the token and redirect URL; nothing is
// persisted locally until the async notification arrives.
func (h *PaymentHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		Error(w, domain.ErrBadRequest("failed to read request body"))
		return
	}

	var req CreateTransactionRequest
	decodeRequestBody(body, &req)

	if err := h.validate.Struct(&req); err != nil {
		JSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}
	req.applyDefaults()

	orderID := domain.NewOrderID(req.UserID, time.Now())
	log.Printf("creating transaction for order %s", orderID)

	snap, err := h.gateway.CreateTransaction(r.Context(), payment.TransactionRequest{
		OrderID:  orderID,
		Email:    req.Email,
		ItemID:   req.ItemID,
		ItemName: domain.GetItem(req.ItemID).Name,
		Amount:   req.Amount,
	})
	if err != nil {
		if apiErr, ok := err.(*payment.APIError); ok {
			log.Printf("snap API error (%d): %s", apiErr.StatusCode, apiErr.Body)
			JSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"error":   "Failed to create Midtrans transaction",
				"detail":  apiErr.Body,
				"status":  apiErr.StatusCode,
			})
			return
		}
		Error(w, domain.ErrInternal("failed to create transaction", err))
		return
	}

	metrics.TransactionsCreatedTotal.Inc()
	JSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"token":        snap.Token,
		"redirect_url": snap.RedirectURL,
		"order_id":     orderID,
		"environment":  h.gateway.Environment(),
	})
}

// Simulate handles POST /api/payment/simulate (ADMIN ONLY — gated in
// router). It activates premium directly, bypassing the gateway.
func (h *PaymentHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}
	if req.UserID == "" {
		JSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	act, err := h.subs.ActivatePremium(r.Context(), req.UserID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"userId":       req.UserID,
		"created":      act.Created,
		"premiumUntil": act.Profile.PremiumUntil.Format(time.RFC3339),
	})
}
