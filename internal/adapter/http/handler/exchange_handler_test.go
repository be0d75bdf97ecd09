package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/adapter/http/dto"
	"github.com/uacwallet/creditledger/internal/usecase"
	"github.com/uacwallet/creditledger/internal/usecase/mocks"
)

func newExchangeHandler(store *mocks.Store) *ExchangeHandler {
	ledger := usecase.NewLedgerUseCase(
		mocks.NewMockTransactionManager(store),
		mocks.NewMockAccountRepository(store),
		mocks.NewMockBalanceRepository(store),
		mocks.NewMockEntryRepository(store),
		mocks.NewMockLedgerRepository(store),
		mocks.NewMockRetrier(),
	)

	rateRepo := mocks.NewMockRateRepository()
	rateRepo.Seed("uac", decimal.RequireFromString("1.00"))
	rateRepo.Seed("manus", decimal.RequireFromString("0.80"))
	rates := usecase.NewRateUseCase(rateRepo, mocks.NewMockCurrencyRepository(), mocks.NewMockIDGenerator(), nil, nil)

	uc := usecase.NewExchangeUseCase(ledger, rates, mocks.NewMockIDGenerator(), nil)

	return NewExchangeHandler(uc)
}

func TestExchangeHandler_Create(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("acc-1")
	store.SetBalance("acc-1", "manus", decimal.NewFromInt(100))

	handler := newExchangeHandler(store)

	body, _ := json.Marshal(dto.ExchangeRequest{
		AccountID:    "acc-1",
		FromCurrency: "manus",
		ToCurrency:   "uac",
		Amount:       decimal.NewFromInt(100),
	})

	req := httptest.NewRequest(http.MethodPost, "/exchanges", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ExchangeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.ToAmount.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected 80 uac, got %s", resp.ToAmount)
	}
	if resp.CorrelationID == "" {
		t.Fatal("expected a correlation id")
	}
}

func TestExchangeHandler_Create_UnknownCurrency(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("acc-1")
	store.SetBalance("acc-1", "manus", decimal.NewFromInt(100))

	handler := newExchangeHandler(store)

	body, _ := json.Marshal(dto.ExchangeRequest{
		AccountID:    "acc-1",
		FromCurrency: "manus",
		ToCurrency:   "ghost",
		Amount:       decimal.NewFromInt(10),
	})

	req := httptest.NewRequest(http.MethodPost, "/exchanges", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
