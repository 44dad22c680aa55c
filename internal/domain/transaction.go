package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrTransactionNotFound indicates that the ledger row is not found.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionType enumerates ledger movement kinds.
type TransactionType string

// Transaction types.
const (
	TypeDeposit     TransactionType = "DEPOSIT"
	TypeWithdrawal  TransactionType = "WITHDRAWAL"
	TypeTransferIn  TransactionType = "TRANSFER_IN"
	TypeTransferOut TransactionType = "TRANSFER_OUT"
	TypeInterest    TransactionType = "INTEREST"
	TypeFee         TransactionType = "FEE"
)

// Polarity returns +1 for types that credit the owning account and -1 for
// types that debit it. Keeping the sign here means a new transaction type
// cannot silently default to the wrong direction.
func (t TransactionType) Polarity() int {
	switch t {
	case TypeDeposit, TypeTransferIn, TypeInterest:
		return 1
	case TypeWithdrawal, TypeTransferOut, TypeFee:
		return -1
	}

	return 0
}

// Valid reports whether the type is a known ledger movement kind.
func (t TransactionType) Valid() bool {
	return t.Polarity() != 0
}

// TransactionChannel enumerates the origin of a movement.
type TransactionChannel string

// Transaction channels.
const (
	ChannelTeller TransactionChannel = "TELLER"
	ChannelATM    TransactionChannel = "ATM"
	ChannelOnline TransactionChannel = "ONLINE"
	ChannelMobile TransactionChannel = "MOBILE"
)

// Transaction is an immutable ledger movement recorded against one account.
// Rows are append-only: nothing updates or deletes them after creation.
type Transaction struct {
	ID                    uuid.UUID          `json:"id"`
	AccountID             uuid.UUID          `json:"account_id"`
	TransactionNumber     string             `json:"transaction_number"`
	TransactionType       TransactionType    `json:"transaction_type"`
	Amount                decimal.Decimal    `json:"amount"`
	Currency              string             `json:"currency"`
	BalanceBefore         decimal.Decimal    `json:"balance_before"`
	BalanceAfter          decimal.Decimal    `json:"balance_after"`
	CounterpartyAccountID *uuid.UUID         `json:"counterparty_account_id,omitempty"`
	Description           string             `json:"description"`
	ReferenceNumber       string             `json:"reference_number"`
	Channel               TransactionChannel `json:"channel"`
	CreatedBy             string             `json:"created_by"`
	TransactionDate       time.Time          `json:"transaction_date"`
}

// CreateTransactionParams holds data needed for a ledger row insert.
type CreateTransactionParams struct {
	AccountID             uuid.UUID
	TransactionNumber     string
	TransactionType       TransactionType
	Amount                decimal.Decimal
	Currency              string
	BalanceBefore         decimal.Decimal
	BalanceAfter          decimal.Decimal
	CounterpartyAccountID *uuid.UUID
	Description           string
	ReferenceNumber       string
	Channel               TransactionChannel
	CreatedBy             string
}
