package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/usecase"
	"github.com/uacwallet/creditledger/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAndGet(t *testing.T) {
	store := mocks.NewStore()
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(store), mocks.NewMockIDGenerator())
	ctx := context.Background()

	created, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
		UserID: "user-1",
		Name:   "primary wallet",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if !created.Active {
		t.Fatal("new accounts must be active")
	}

	got, err := uc.GetAccount(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "user-1" || got.Name != "primary wallet" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestAccountUseCase_GetUnknown(t *testing.T) {
	store := mocks.NewStore()
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(store), mocks.NewMockIDGenerator())

	if _, err := uc.GetAccount(context.Background(), "ghost"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_Deactivate(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("acc-1")
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(store), mocks.NewMockIDGenerator())
	ctx := context.Background()

	if err := uc.DeactivateAccount(ctx, "acc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := uc.GetAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Active {
		t.Fatal("expected account to be inactive")
	}

	if err := uc.DeactivateAccount(ctx, "ghost"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_ListPagination(t *testing.T) {
	store := mocks.NewStore()
	for _, id := range []string{"acc-1", "acc-2", "acc-3"} {
		store.AddAccount(id)
	}
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(store), mocks.NewMockIDGenerator())
	ctx := context.Background()

	page, err := uc.ListAccounts(ctx, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(page))
	}

	rest, err := uc.ListAccounts(ctx, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 1 {
		t.Fatalf("expected 1 account, got %d", len(rest))
	}
}
