// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/corebank/miniledger/internal/accountrepo"
	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/pkg/dbpkg"
	"github.com/corebank/miniledger/pkg/randompkg"
)

// SeedAccount creates a random ACTIVE account with zero balance.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		AccountNumber: randompkg.AccountNumber(),
		AccountName:   randompkg.Owner(),
		Currency:      "IDR",
		CreatedBy:     "test",
	}

	accountRepo := accountrepo.NewRepoPGS(db)

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedAccountWithBalance creates a random ACTIVE account holding the given balance.
func SeedAccountWithBalance(t *testing.T, db dbpkg.SQLInterface, balance string) domain.Account {
	t.Helper()

	account := SeedAccount(t, db)

	accountRepo := accountrepo.NewRepoPGS(db)

	account, err := accountRepo.SetBalance(context.Background(), account.ID, decimal.RequireFromString(balance))
	if err != nil {
		t.Fatalf("accountRepo.SetBalance(context.Background(), %v, %v) returned error: %v",
			account.ID, balance, err)
	}

	return account
}
