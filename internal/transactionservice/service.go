// Package transactionservice manages business logic layer of single-account
// teller operations: cash deposits and cash withdrawals.
package transactionservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/internal/transferservice"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	DepositTx(ctx context.Context, arg domain.DepositParams) (domain.Transaction, error)
	WithdrawTx(ctx context.Context, arg domain.WithdrawParams) (domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int32) ([]domain.Transaction, error)
}

// AccountReader resolves accounts during validation.
type AccountReader interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
}

// Sequencer mints transaction numbers.
type Sequencer interface {
	Next(ctx context.Context, name, prefix string) (string, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo     Repo
	accounts AccountReader
	sequence Sequencer
}

// New returns transaction service struct to manage deposits and withdrawals.
func New(tr Repo, ar AccountReader, sq Sequencer) *Service {
	return &Service{
		repo:     tr,
		accounts: ar,
		sequence: sq,
	}
}

// MovementRequest is the caller-facing input of a deposit or withdrawal.
type MovementRequest struct {
	AccountID       uuid.UUID
	Amount          decimal.Decimal
	Description     string
	ReferenceNumber string
	Channel         domain.TransactionChannel
	CreatedBy       string
}

func (s *Service) validRequest(ctx context.Context, req MovementRequest) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	account, err := s.accounts.Get(ctx, req.AccountID)
	if err != nil {
		l.Info().Err(err).Str("account_id", req.AccountID.String()).Send()
		return account, err
	}

	if !account.IsActive() {
		return account, fmt.Errorf("%w: account %s is %s",
			domain.ErrAccountNotActive, account.AccountNumber, account.Status)
	}

	return account, nil
}

// Deposit validates the request, mints a transaction number and credits the
// account within one unit of work.
func (s *Service) Deposit(ctx context.Context, req MovementRequest) (domain.Transaction, error) {
	if _, err := s.validRequest(ctx, req); err != nil {
		return domain.Transaction{}, err
	}

	txnNumber, err := s.sequence.Next(ctx,
		transferservice.TransactionNumberSequence, transferservice.TransactionNumberPrefix)
	if err != nil {
		return domain.Transaction{}, err
	}

	arg := domain.DepositParams{
		AccountID:         req.AccountID,
		TransactionNumber: txnNumber,
		Amount:            req.Amount,
		Description:       defaultString(req.Description, "Cash Deposit"),
		ReferenceNumber:   req.ReferenceNumber,
		Channel:           defaultChannel(req.Channel),
		CreatedBy:         defaultString(req.CreatedBy, "SYSTEM"),
	}

	return s.repo.DepositTx(ctx, arg)
}

// Withdraw validates the request, mints a transaction number and debits the
// account within one unit of work.
func (s *Service) Withdraw(ctx context.Context, req MovementRequest) (domain.Transaction, error) {
	account, err := s.validRequest(ctx, req)
	if err != nil {
		return domain.Transaction{}, err
	}

	if account.Balance.LessThan(req.Amount) {
		return domain.Transaction{}, fmt.Errorf("%w. Available: %s",
			domain.ErrInsufficientBalance, account.Balance.StringFixed(2))
	}

	txnNumber, err := s.sequence.Next(ctx,
		transferservice.TransactionNumberSequence, transferservice.TransactionNumberPrefix)
	if err != nil {
		return domain.Transaction{}, err
	}

	arg := domain.WithdrawParams{
		AccountID:         req.AccountID,
		TransactionNumber: txnNumber,
		Amount:            req.Amount,
		Description:       defaultString(req.Description, "Cash Withdrawal"),
		ReferenceNumber:   req.ReferenceNumber,
		Channel:           defaultChannel(req.Channel),
		CreatedBy:         defaultString(req.CreatedBy, "SYSTEM"),
	}

	return s.repo.WithdrawTx(ctx, arg)
}

// List returns the account's ledger rows, newest first.
func (s *Service) List(ctx context.Context, accountID uuid.UUID, pageSize, pageID int32) ([]domain.Transaction, error) {
	if pageID < 1 {
		pageID = 1
	}

	return s.repo.ListByAccount(ctx, accountID, pageSize, (pageID-1)*pageSize)
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

func defaultChannel(c domain.TransactionChannel) domain.TransactionChannel {
	if c == "" {
		return domain.ChannelTeller
	}

	return c
}
