package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/usecase"
	"github.com/uacwallet/creditledger/internal/usecase/mocks"
)

const feeAccount = "platform-fees"

func newTransfer(store *mocks.Store) *usecase.TransferUseCase {
	store.AddAccount(feeAccount)
	return usecase.NewTransferUseCase(newLedger(store), mocks.NewMockIDGenerator(), feeAccount, nil)
}

func TestTransferUseCase_FeeSplit(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("alice")
	store.AddAccount("bob")
	store.SetBalance("alice", "uac", decimal.NewFromInt(102))
	uc := newTransfer(store)

	result, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccountID: "alice",
		ToAccountID:   "bob",
		Amount:        decimal.NewFromInt(100),
		FeeRate:       decimal.RequireFromString("0.02"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Fee.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected fee 2, got %s", result.Fee)
	}
	if !result.FromBalance.IsZero() {
		t.Fatalf("expected alice drained, got %s", result.FromBalance)
	}

	if got := store.Balance("bob", "uac"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected bob to receive 100, got %s", got)
	}
	if got := store.Balance(feeAccount, "uac"); !got.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected fee account to receive 2, got %s", got)
	}

	// Three entries, one correlation id, kinds out/in/fee.
	entries := store.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for _, e := range entries[1:] {
		if e.CorrelationID != entries[0].CorrelationID {
			t.Fatal("transfer entries must share a correlation id")
		}
	}
	if entries[0].Kind != domain.EntryKindTransferOut ||
		entries[1].Kind != domain.EntryKindTransferIn ||
		entries[2].Kind != domain.EntryKindFee {
		t.Fatalf("unexpected kinds: %s, %s, %s", entries[0].Kind, entries[1].Kind, entries[2].Kind)
	}
	if !entries[0].Amount.Equal(decimal.NewFromInt(-102)) {
		t.Fatalf("sender debit must cover amount plus fee, got %s", entries[0].Amount)
	}
}

func TestTransferUseCase_InsufficientForAmountPlusFee(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("alice")
	store.AddAccount("bob")
	store.SetBalance("alice", "uac", decimal.NewFromInt(100))
	uc := newTransfer(store)

	// 100 covers the amount but not the 2% fee.
	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccountID: "alice",
		ToAccountID:   "bob",
		Amount:        decimal.NewFromInt(100),
		FeeRate:       decimal.RequireFromString("0.02"),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if got := len(store.Entries()); got != 0 {
		t.Fatalf("failed transfer must write nothing, found %d entries", got)
	}
	if got := store.Balance("alice", "uac"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("alice balance changed to %s", got)
	}
}

func TestTransferUseCase_ZeroFeeRate(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("alice")
	store.AddAccount("bob")
	store.SetBalance("alice", "uac", decimal.NewFromInt(100))
	uc := newTransfer(store)

	result, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccountID: "alice",
		ToAccountID:   "bob",
		Amount:        decimal.NewFromInt(100),
		FeeRate:       decimal.Zero,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Fee.IsZero() {
		t.Fatalf("expected zero fee, got %s", result.Fee)
	}

	// No fee entry when the fee rounds to zero.
	if got := len(store.Entries()); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
	if got := store.Balance(feeAccount, "uac"); !got.IsZero() {
		t.Fatalf("fee account credited %s on a zero-fee transfer", got)
	}
}

func TestTransferUseCase_FeeRounding(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("alice")
	store.AddAccount("bob")
	store.SetBalance("alice", "uac", decimal.NewFromInt(10))
	uc := newTransfer(store)

	// 2% of 1.25 is 0.025; banker's rounding gives 0.02.
	result, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccountID: "alice",
		ToAccountID:   "bob",
		Amount:        decimal.RequireFromString("1.25"),
		FeeRate:       decimal.RequireFromString("0.02"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Fee.Equal(decimal.RequireFromString("0.02")) {
		t.Fatalf("expected fee 0.02, got %s", result.Fee)
	}
}

func TestTransferUseCase_Validation(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("alice")
	store.AddAccount("bob")
	store.SetBalance("alice", "uac", decimal.NewFromInt(1000))
	uc := newTransfer(store)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   usecase.TransferInput
		wantErr error
	}{
		{
			name: "same account",
			input: usecase.TransferInput{
				FromAccountID: "alice", ToAccountID: "alice",
				Amount: decimal.NewFromInt(10), FeeRate: decimal.Zero,
			},
			wantErr: domain.ErrSameAccount,
		},
		{
			name: "zero amount",
			input: usecase.TransferInput{
				FromAccountID: "alice", ToAccountID: "bob",
				Amount: decimal.Zero, FeeRate: decimal.Zero,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "negative fee rate",
			input: usecase.TransferInput{
				FromAccountID: "alice", ToAccountID: "bob",
				Amount: decimal.NewFromInt(10), FeeRate: decimal.RequireFromString("-0.01"),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "fee rate of one",
			input: usecase.TransferInput{
				FromAccountID: "alice", ToAccountID: "bob",
				Amount: decimal.NewFromInt(10), FeeRate: decimal.NewFromInt(1),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "unknown recipient",
			input: usecase.TransferInput{
				FromAccountID: "alice", ToAccountID: "ghost",
				Amount: decimal.NewFromInt(10), FeeRate: decimal.Zero,
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Transfer(ctx, tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
