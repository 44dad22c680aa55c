// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/miniledger/internal/domain"
)

// TransactionNumberSequence names the shared counter for ledger row numbering.
const TransactionNumberSequence = "TRANSACTION_NUMBER"

// TransactionNumberPrefix prefixes every minted transaction number.
const TransactionNumberPrefix = "TXN"

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	TransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error)
}

// AccountReader resolves accounts during validation.
type AccountReader interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
}

// Sequencer mints transaction numbers.
type Sequencer interface {
	Next(ctx context.Context, name, prefix string) (string, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo     Repo
	accounts AccountReader
	sequence Sequencer
}

// New returns transfer service struct to manage transfer business logic.
func New(tr Repo, ar AccountReader, sq Sequencer) *Service {
	return &Service{
		repo:     tr,
		accounts: ar,
		sequence: sq,
	}
}

// TransferRequest is the caller-facing input of a transfer operation.
type TransferRequest struct {
	SourceAccountID          uuid.UUID
	DestinationAccountNumber string
	Amount                   decimal.Decimal
	Description              string
	ReferenceNumber          string
	Channel                  domain.TransactionChannel
	RequestedBy              string
}

func (s *Service) validRequest(ctx context.Context, req TransferRequest) (source, destination domain.Account, err error) {
	l := zerolog.Ctx(ctx)

	source, err = s.accounts.Get(ctx, req.SourceAccountID)
	if err != nil {
		l.Info().Err(err).Str("source_account_id", req.SourceAccountID.String()).Send()
		if err == domain.ErrAccountNotFound {
			err = fmt.Errorf("%w: source account %s", domain.ErrAccountNotFound, req.SourceAccountID)
		}

		return source, destination, err
	}

	destination, err = s.accounts.GetByNumber(ctx, req.DestinationAccountNumber)
	if err != nil {
		l.Info().Err(err).Str("destination_account_number", req.DestinationAccountNumber).Send()
		if err == domain.ErrAccountNotFound {
			err = fmt.Errorf("%w: destination account %s", domain.ErrAccountNotFound, req.DestinationAccountNumber)
		}

		return source, destination, err
	}

	if source.ID == destination.ID {
		return source, destination, domain.ErrSelfTransfer
	}

	if !source.IsActive() {
		return source, destination, fmt.Errorf("%w: source account %s is %s",
			domain.ErrAccountNotActive, source.AccountNumber, source.Status)
	}

	if !destination.IsActive() {
		return source, destination, fmt.Errorf("%w: destination account %s is %s",
			domain.ErrAccountNotActive, destination.AccountNumber, destination.Status)
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return source, destination, domain.ErrInvalidAmount
	}

	if source.Balance.LessThan(req.Amount) {
		return source, destination, fmt.Errorf("%w. Available: %s",
			domain.ErrInsufficientBalance, source.Balance.StringFixed(2))
	}

	return source, destination, nil
}

// Transfer validates the request, mints one transaction number per leg and
// executes the double-entry unit of work. Nothing is persisted when any
// validation step fails.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (domain.TransferTxResult, error) {
	source, destination, err := s.validRequest(ctx, req)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	sourceTxnNumber, err := s.sequence.Next(ctx, TransactionNumberSequence, TransactionNumberPrefix)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	destinationTxnNumber, err := s.sequence.Next(ctx, TransactionNumberSequence, TransactionNumberPrefix)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	referenceNumber := req.ReferenceNumber
	if referenceNumber == "" {
		referenceNumber = sourceTxnNumber
	}

	channel := req.Channel
	if channel == "" {
		channel = domain.ChannelTeller
	}

	result, err := s.repo.TransferTx(ctx, domain.TransferParams{
		SourceAccountID:      source.ID,
		DestinationAccountID: destination.ID,
		SourceTxnNumber:      sourceTxnNumber,
		DestinationTxnNumber: destinationTxnNumber,
		Amount:               req.Amount,
		Description:          req.Description,
		ReferenceNumber:      referenceNumber,
		Channel:              channel,
		CreatedBy:            req.RequestedBy,
	})
	if err != nil {
		return result, err
	}

	return result, nil
}
