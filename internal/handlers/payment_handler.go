package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Tahsin0604/harmony-academy-server/internal/payment"
)

type PaymentHandler struct {
	gateway payment.Gateway
	log     zerolog.Logger
}

func NewPaymentHandler(gateway payment.Gateway, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, log: log}
}

// CreatePaymentIntent asks the card gateway for a payment
// authorization and returns the client-side confirmation secret.
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	secret, err := h.gateway.CreateIntent(r.Context(), body.Price)
	if errors.Is(err, payment.ErrInvalidAmount) {
		writeError(w, http.StatusBadRequest, "invalid payment amount")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("payment intent failed")
		writeError(w, http.StatusBadGateway, "payment gateway unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}
