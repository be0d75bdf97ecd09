package handler

import (
	"encoding/json"
	"net/http"

	"github.com/uacwallet/creditledger/internal/adapter/http/dto"
	"github.com/uacwallet/creditledger/internal/usecase"
)

// PaymentHandler handles payment confirmation callbacks.
type PaymentHandler struct {
	paymentUC *usecase.PaymentUseCase
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Confirm credits an account after a payment gateway confirmation. Repeating
// a confirmation with the same external reference returns the original
// result with replayed set.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.paymentUC.ConfirmPayment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to confirm payment", err.Error())

		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	writeJSON(w, status, dto.PaymentFromUseCase(result))
}
