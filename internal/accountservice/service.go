// Package accountservice manages business logic layer of account lifecycle.
package accountservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/internal/transferservice"
)

// AccountNumberSequence names the counter for account numbering.
const AccountNumberSequence = "ACCOUNT_NUMBER"

// AccountNumberPrefix prefixes every minted account number.
const AccountNumberPrefix = "A"

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
}

// Ledger provides the units of work used for opening balances and closure.
type Ledger interface {
	DepositTx(ctx context.Context, arg domain.DepositParams) (domain.Transaction, error)
	CloseTx(ctx context.Context, id uuid.UUID, closedDate time.Time) (domain.Account, error)
}

// Sequencer mints account and transaction numbers.
type Sequencer interface {
	Next(ctx context.Context, name, prefix string) (string, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo     Repo
	ledger   Ledger
	sequence Sequencer
}

// New returns account service struct to manage account lifecycle logic.
func New(ar Repo, lr Ledger, sq Sequencer) *Service {
	return &Service{
		repo:     ar,
		ledger:   lr,
		sequence: sq,
	}
}

// OpenRequest is the caller-facing input of an account opening.
type OpenRequest struct {
	AccountName    string
	Currency       string
	InitialDeposit decimal.Decimal
	CreatedBy      string
}

// Open mints an account number, creates the account ACTIVE with zero balance
// and books the opening deposit, when any, through the regular deposit unit
// of work.
func (s *Service) Open(ctx context.Context, req OpenRequest) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if req.InitialDeposit.IsNegative() {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	accountNumber, err := s.sequence.Next(ctx, AccountNumberSequence, AccountNumberPrefix)
	if err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.Create(ctx, domain.CreateAccountParams{
		AccountNumber: accountNumber,
		AccountName:   req.AccountName,
		Currency:      req.Currency,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		return account, err
	}

	if req.InitialDeposit.IsPositive() {
		txnNumber, err := s.sequence.Next(ctx,
			transferservice.TransactionNumberSequence, transferservice.TransactionNumberPrefix)
		if err != nil {
			return account, err
		}

		if _, err := s.ledger.DepositTx(ctx, domain.DepositParams{
			AccountID:         account.ID,
			TransactionNumber: txnNumber,
			Amount:            req.InitialDeposit,
			Description:       "Initial Deposit",
			Channel:           domain.ChannelTeller,
			CreatedBy:         req.CreatedBy,
		}); err != nil {
			return account, err
		}

		account, err = s.repo.Get(ctx, account.ID)
		if err != nil {
			return account, err
		}
	}

	l.Info().Str("account_number", account.AccountNumber).Msg("account opened")

	return account, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByNumber returns the account with the given account number.
func (s *Service) GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	return s.repo.GetByNumber(ctx, accountNumber)
}

// Close closes the account once it holds a zero balance. The zero-balance
// check runs inside the unit of work, under the row lock, so a concurrent
// deposit cannot land between the check and the status change.
func (s *Service) Close(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	return s.ledger.CloseTx(ctx, id, time.Now())
}
