package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrSelfTransfer indicates that source and destination resolve to the same account.
var ErrSelfTransfer = errors.New("transfer to the same account is not allowed")

// DepositParams is the input for a single-account credit unit of work.
type DepositParams struct {
	AccountID         uuid.UUID
	TransactionNumber string
	Amount            decimal.Decimal
	Description       string
	ReferenceNumber   string
	Channel           TransactionChannel
	CreatedBy         string
}

// WithdrawParams is the input for a single-account debit unit of work.
type WithdrawParams struct {
	AccountID         uuid.UUID
	TransactionNumber string
	Amount            decimal.Decimal
	Description       string
	ReferenceNumber   string
	Channel           TransactionChannel
	CreatedBy         string
}

// TransferParams is the input for the double-entry transfer unit of work.
// The two legs receive independent transaction numbers but share the
// caller-facing reference number and description.
type TransferParams struct {
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	SourceTxnNumber      string
	DestinationTxnNumber string
	Amount               decimal.Decimal
	Description          string
	ReferenceNumber      string
	Channel              TransactionChannel
	CreatedBy            string
}

// TransferTxResult is the result of the transfer transaction: both mutated
// accounts and the two mutually-referencing ledger rows.
type TransferTxResult struct {
	SourceAccount          Account     `json:"source_account"`
	DestinationAccount     Account     `json:"destination_account"`
	SourceTransaction      Transaction `json:"source_transaction"`
	DestinationTransaction Transaction `json:"destination_transaction"`
}
