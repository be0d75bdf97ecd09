package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uacwallet/creditledger/internal/adapter/http/dto"
	"github.com/uacwallet/creditledger/internal/usecase"
)

// RateHandler handles rate table HTTP requests.
type RateHandler struct {
	rateUC *usecase.RateUseCase
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateUC *usecase.RateUseCase) *RateHandler {
	return &RateHandler{rateUC: rateUC}
}

// List returns the active rate per currency.
func (h *RateHandler) List(w http.ResponseWriter, r *http.Request) {
	rates, err := h.rateUC.ListRates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list rates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RatesFromDomain(rates))
}

// Get returns the active rate for a currency.
func (h *RateHandler) Get(w http.ResponseWriter, r *http.Request) {
	currency := chi.URLParam(r, "currency")
	if currency == "" {
		writeError(w, http.StatusBadRequest, "missing currency", "")
		return
	}

	rate, err := h.rateUC.GetRate(r.Context(), currency)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get rate", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"currency": currency,
		"rate":     rate,
	})
}

// Set records a new rate version for a currency.
func (h *RateHandler) Set(w http.ResponseWriter, r *http.Request) {
	currency := chi.URLParam(r, "currency")
	if currency == "" {
		writeError(w, http.StatusBadRequest, "missing currency", "")
		return
	}

	var req dto.SetRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.rateUC.SetRate(r.Context(), currency, req.Rate)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to set rate", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.RateFromDomain(entry))
}

// History returns a currency's rate versions, newest first.
func (h *RateHandler) History(w http.ResponseWriter, r *http.Request) {
	currency := chi.URLParam(r, "currency")
	if currency == "" {
		writeError(w, http.StatusBadRequest, "missing currency", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	rates, err := h.rateUC.ListHistory(r.Context(), currency, limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list rate history", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RatesFromDomain(rates))
}
