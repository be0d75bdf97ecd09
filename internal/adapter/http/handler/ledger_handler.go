package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/uacwallet/creditledger/internal/adapter/http/dto"
	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/usecase"
)

// LedgerHandler handles balance and entry history HTTP requests.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
	rates    usecase.RateSource
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase, rates usecase.RateSource) *LedgerHandler {
	return &LedgerHandler{
		ledgerUC: ledgerUC,
		rates:    rates,
	}
}

// Summary returns all balances of an account with their UAC-equivalent total.
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	summary, err := h.ledgerUC.Summary(r.Context(), accountID, h.rates)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get wallet summary", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary))
}

// Balance returns an account's balance in one currency.
func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	currency := chi.URLParam(r, "currency")
	if accountID == "" || currency == "" {
		writeError(w, http.StatusBadRequest, "missing account ID or currency", "")
		return
	}

	balance, err := h.ledgerUC.CurrentBalance(r.Context(), accountID, currency)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"account_id": accountID,
		"currency":   currency,
		"amount":     balance,
	})
}

// Entries lists an account's ledger entries, newest first. Supports currency
// and kind query filters.
func (h *LedgerHandler) Entries(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	filter := usecase.EntryFilter{
		Currency: r.URL.Query().Get("currency"),
		Kind:     domain.EntryKind(r.URL.Query().Get("kind")),
	}
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.ledgerUC.ListEntries(r.Context(), accountID, filter, limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list entries", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// CheckConsistency verifies every materialized balance against the sum of
// its entries.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	consistent, mismatched, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	resp := dto.ConsistencyResponse{
		Consistent: consistent,
		Status:     "ok",
	}
	if !consistent {
		resp.Status = "mismatched"
		resp.Mismatched = make([]string, len(mismatched))
		for i, key := range mismatched {
			resp.Mismatched[i] = fmt.Sprintf("%s/%s", key.AccountID, key.Currency)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
