package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/adapter/http/dto"
	"github.com/uacwallet/creditledger/internal/usecase"
)

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC     *usecase.TransferUseCase
	defaultFeeRate decimal.Decimal
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase, defaultFeeRate decimal.Decimal) *TransferHandler {
	return &TransferHandler{
		transferUC:     transferUC,
		defaultFeeRate: defaultFeeRate,
	}
}

// Create sends UAC from one account to another.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput(h.defaultFeeRate))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to transfer credits", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromUseCase(result))
}
