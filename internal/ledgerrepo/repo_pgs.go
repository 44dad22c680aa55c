// Package ledgerrepo owns the atomic units of work of the ledger: deposit,
// withdrawal and double-entry transfer. Each method runs the account
// mutation and its ledger rows inside a single database transaction with
// rollback-on-any-failure semantics.
package ledgerrepo

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/corebank/miniledger/internal/accountrepo"
	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/internal/transactionrepo"
	"github.com/corebank/miniledger/pkg/errorspkg"
)

// RepoPGS facilitates ledger unit-of-work logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

func (r *RepoPGS) begin(ctx context.Context) (*sql.Tx, func(), error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, nil, errorspkg.ErrInternal
	}

	rollback := func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}

	return tx, rollback, nil
}

// DepositTx credits one account and appends its DEPOSIT row atomically.
func (r *RepoPGS) DepositTx(ctx context.Context, arg domain.DepositParams) (domain.Transaction, error) {
	return r.singleLegTx(ctx, domain.TypeDeposit, domain.CreateTransactionParams{
		AccountID:         arg.AccountID,
		TransactionNumber: arg.TransactionNumber,
		Amount:            arg.Amount,
		Description:       arg.Description,
		ReferenceNumber:   arg.ReferenceNumber,
		Channel:           arg.Channel,
		CreatedBy:         arg.CreatedBy,
	})
}

// WithdrawTx debits one account and appends its WITHDRAWAL row atomically.
func (r *RepoPGS) WithdrawTx(ctx context.Context, arg domain.WithdrawParams) (domain.Transaction, error) {
	return r.singleLegTx(ctx, domain.TypeWithdrawal, domain.CreateTransactionParams{
		AccountID:         arg.AccountID,
		TransactionNumber: arg.TransactionNumber,
		Amount:            arg.Amount,
		Description:       arg.Description,
		ReferenceNumber:   arg.ReferenceNumber,
		Channel:           arg.Channel,
		CreatedBy:         arg.CreatedBy,
	})
}

func (r *RepoPGS) singleLegTx(ctx context.Context, txnType domain.TransactionType, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var txn domain.Transaction

	tx, rollback, err := r.begin(ctx)
	if err != nil {
		return txn, err
	}
	defer rollback()

	accountRepo := accountrepo.NewRepoPGS(tx)
	txnRepo := transactionrepo.NewRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, arg.AccountID)
	if err != nil {
		return txn, err
	}

	if !account.IsActive() {
		return txn, domain.ErrAccountNotActive
	}

	arg.BalanceBefore = account.Balance
	arg.Currency = account.Currency

	switch txnType {
	case domain.TypeWithdrawal:
		err = account.Withdraw(arg.Amount)
	default:
		err = account.Deposit(arg.Amount)
	}

	if err != nil {
		return txn, err
	}

	arg.TransactionType = txnType
	arg.BalanceAfter = account.Balance

	txn, err = txnRepo.Create(ctx, arg)
	if err != nil {
		return txn, err
	}

	if _, err = accountRepo.SetBalance(ctx, account.ID, account.Balance); err != nil {
		return txn, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return txn, errorspkg.ErrInternal
	}

	return txn, nil
}

// CloseTx closes the account as a unit of work. The row is read under
// lock so a concurrent deposit cannot slip funds into an account between the
// zero-balance check and the status change.
func (r *RepoPGS) CloseTx(ctx context.Context, id uuid.UUID, closedDate time.Time) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var account domain.Account

	tx, rollback, err := r.begin(ctx)
	if err != nil {
		return account, err
	}
	defer rollback()

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err = accountRepo.GetForUpdate(ctx, id)
	if err != nil {
		return account, err
	}

	if err := account.Close(closedDate); err != nil {
		return account, err
	}

	account, err = accountRepo.SetClosed(ctx, id, closedDate)
	if err != nil {
		return account, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return account, errorspkg.ErrInternal
	}

	return account, nil
}

// TransferTx moves funds between two distinct accounts as one all-or-nothing
// operation: both balance mutations plus the TRANSFER_OUT and TRANSFER_IN
// rows commit together or not at all.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	if arg.SourceAccountID == arg.DestinationAccountID {
		return result, domain.ErrSelfTransfer
	}

	tx, rollback, err := r.begin(ctx)
	if err != nil {
		return result, err
	}
	defer rollback()

	accountRepo := accountrepo.NewRepoPGS(tx)
	txnRepo := transactionrepo.NewRepoPGS(tx)

	// Lock rows in ascending account id order regardless of transfer
	// direction so two opposite-direction transfers on the same pair
	// cannot deadlock.
	source, destination, err := lockPair(ctx, accountRepo, arg)
	if err != nil {
		return result, err
	}

	if !source.IsActive() {
		return result, fmt.Errorf("%w: source account %s is %s",
			domain.ErrAccountNotActive, source.AccountNumber, source.Status)
	}

	if !destination.IsActive() {
		return result, fmt.Errorf("%w: destination account %s is %s",
			domain.ErrAccountNotActive, destination.AccountNumber, destination.Status)
	}

	sourceBefore := source.Balance
	destinationBefore := destination.Balance

	if err := source.Withdraw(arg.Amount); err != nil {
		return result, err
	}

	if err := destination.Deposit(arg.Amount); err != nil {
		return result, err
	}

	result.SourceTransaction, err = txnRepo.Create(ctx, domain.CreateTransactionParams{
		AccountID:             source.ID,
		TransactionNumber:     arg.SourceTxnNumber,
		TransactionType:       domain.TypeTransferOut,
		Amount:                arg.Amount,
		Currency:              source.Currency,
		BalanceBefore:         sourceBefore,
		BalanceAfter:          source.Balance,
		CounterpartyAccountID: &destination.ID,
		Description:           arg.Description,
		ReferenceNumber:       arg.ReferenceNumber,
		Channel:               arg.Channel,
		CreatedBy:             arg.CreatedBy,
	})
	if err != nil {
		return result, err
	}

	result.DestinationTransaction, err = txnRepo.Create(ctx, domain.CreateTransactionParams{
		AccountID:             destination.ID,
		TransactionNumber:     arg.DestinationTxnNumber,
		TransactionType:       domain.TypeTransferIn,
		Amount:                arg.Amount,
		Currency:              destination.Currency,
		BalanceBefore:         destinationBefore,
		BalanceAfter:          destination.Balance,
		CounterpartyAccountID: &source.ID,
		Description:           arg.Description,
		ReferenceNumber:       arg.ReferenceNumber,
		Channel:               arg.Channel,
		CreatedBy:             arg.CreatedBy,
	})
	if err != nil {
		return result, err
	}

	result.SourceAccount, err = accountRepo.SetBalance(ctx, source.ID, source.Balance)
	if err != nil {
		return result, err
	}

	result.DestinationAccount, err = accountRepo.SetBalance(ctx, destination.ID, destination.Balance)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// ListByAccount returns the account's ledger rows, newest first.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int32) ([]domain.Transaction, error) {
	return transactionrepo.NewRepoPGS(r.conn).ListByAccount(ctx, accountID, limit, offset)
}

func lockPair(ctx context.Context, r *accountrepo.RepoPGS, arg domain.TransferParams) (domain.Account, domain.Account, error) {
	first, second := arg.SourceAccountID, arg.DestinationAccountID
	if bytes.Compare(first[:], second[:]) > 0 {
		first, second = second, first
	}

	a1, err := r.GetForUpdate(ctx, first)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	a2, err := r.GetForUpdate(ctx, second)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	if a1.ID == arg.SourceAccountID {
		return a1, a2, nil
	}

	return a2, a1, nil
}
