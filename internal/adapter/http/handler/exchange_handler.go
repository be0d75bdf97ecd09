package handler

import (
	"encoding/json"
	"net/http"

	"github.com/uacwallet/creditledger/internal/adapter/http/dto"
	"github.com/uacwallet/creditledger/internal/usecase"
)

// ExchangeHandler handles currency conversion HTTP requests.
type ExchangeHandler struct {
	exchangeUC *usecase.ExchangeUseCase
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(exchangeUC *usecase.ExchangeUseCase) *ExchangeHandler {
	return &ExchangeHandler{exchangeUC: exchangeUC}
}

// Create converts credits between currencies.
func (h *ExchangeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.exchangeUC.Exchange(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to exchange credits", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ExchangeFromUseCase(result))
}
