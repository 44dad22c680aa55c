// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNotActive indicates that the account is not in ACTIVE status.
	ErrAccountNotActive = errors.New("account is not active")
	// ErrAccountClosed indicates a balance mutation against a CLOSED account.
	ErrAccountClosed = errors.New("account is closed")
	// ErrAccountAlreadyClosed indicates a closure of an already CLOSED account.
	ErrAccountAlreadyClosed = errors.New("account is already closed")
	// ErrNonZeroBalance indicates a closure attempt while funds remain.
	ErrNonZeroBalance = errors.New("account balance must be zero before closure")
	// ErrInsufficientBalance indicates that the account does not hold enough funds.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount indicates a zero, negative or unparseable amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrAccountNumberTaken indicates a duplicate account number.
	ErrAccountNumberTaken = errors.New("account number already taken")
	// ErrConcurrencyConflict indicates a lost-update race; the whole operation
	// is safe to retry from validation.
	ErrConcurrencyConflict = errors.New("concurrent update conflict, please retry")
)

// AccountStatus enumerates account lifecycle states.
type AccountStatus string

// Account statuses.
const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
	StatusClosed   AccountStatus = "CLOSED"
	StatusFrozen   AccountStatus = "FROZEN"
)

// Account holds ledger balance and lifecycle state for a customer account.
type Account struct {
	ID            uuid.UUID       `json:"id"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	Status        AccountStatus   `json:"status"`
	OpenedDate    time.Time       `json:"opened_date"`
	ClosedDate    *time.Time      `json:"closed_date,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateAccountParams holds data needed for Account creation.
type CreateAccountParams struct {
	AccountNumber string
	AccountName   string
	Currency      string
	CreatedBy     string
}

// Deposit credits the account. Mutation is only forbidden on CLOSED accounts;
// the ACTIVE-status policy belongs to the calling operation.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if a.Status == StatusClosed {
		return ErrAccountClosed
	}

	a.Balance = a.Balance.Add(amount)

	return nil
}

// Withdraw debits the account, keeping the balance non-negative.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if a.Status == StatusClosed {
		return ErrAccountClosed
	}

	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	a.Balance = a.Balance.Sub(amount)

	return nil
}

// Close transitions the account to CLOSED once the balance reaches zero.
func (a *Account) Close(at time.Time) error {
	if a.Status == StatusClosed {
		return ErrAccountAlreadyClosed
	}

	if !a.Balance.IsZero() {
		return ErrNonZeroBalance
	}

	a.Status = StatusClosed
	a.ClosedDate = &at

	return nil
}

// IsActive reports whether the account accepts teller operations.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}
