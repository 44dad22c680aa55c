// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/pkg/dbpkg"
	"github.com/corebank/miniledger/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const accountColumns = `
	id, account_number, account_name, currency, balance, status,
	opened_date, closed_date, created_by, created_at
`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a          domain.Account
		closedDate sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.AccountNumber,
		&a.AccountName,
		&a.Currency,
		&a.Balance,
		&a.Status,
		&a.OpenedDate,
		&closedDate,
		&a.CreatedBy,
		&a.CreatedAt,
	)

	if closedDate.Valid {
		a.ClosedDate = &closedDate.Time
	}

	return a, err
}

const createQuery = `
INSERT INTO
    accounts (account_number, account_name, currency, balance, status, created_by)
VALUES
    ($1, $2, $3, 0, 'ACTIVE', $4)
RETURNING` + accountColumns

// Create creates the account with a zero balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountNumber, arg.AccountName, arg.Currency, arg.CreatedBy)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_account_number_key" {
				return a, domain.ErrAccountNumberTaken
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE account_number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getByNumberQuery, accountNumber))
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getForUpdateQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE id = $1
FOR UPDATE
`

// GetForUpdate returns the account with the given id holding its row lock
// until the surrounding transaction ends. Concurrent read-modify-write cycles
// against the same account serialize on this lock.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getForUpdateQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "40001", "40P01":
				return a, domain.ErrConcurrencyConflict
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const setBalanceQuery = `
UPDATE accounts
SET balance = $2
WHERE id = $1
RETURNING` + accountColumns

// SetBalance writes the account's balance and returns the updated account.
func (r *RepoPGS) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, setBalanceQuery, id, balance))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const setClosedQuery = `
UPDATE accounts
SET status = 'CLOSED', closed_date = $2
WHERE id = $1
RETURNING` + accountColumns

// SetClosed marks the account CLOSED and stamps the closure date.
func (r *RepoPGS) SetClosed(ctx context.Context, id uuid.UUID, closedDate time.Time) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, setClosedQuery, id, closedDate))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
