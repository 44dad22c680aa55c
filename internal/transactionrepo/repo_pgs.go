// Package transactionrepo manages repository layer of ledger transactions.
//
// The transactions table is append-only: this package deliberately exposes no
// UPDATE or DELETE statement.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/pkg/dbpkg"
	"github.com/corebank/miniledger/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const transactionColumns = `
	id, account_id, transaction_number, transaction_type, amount, currency,
	balance_before, balance_after, counterparty_account_id, description,
	reference_number, channel, created_by, transaction_date
`

func scanTransaction(scan func(...interface{}) error) (domain.Transaction, error) {
	var (
		t            domain.Transaction
		counterparty uuid.NullUUID
	)

	err := scan(
		&t.ID,
		&t.AccountID,
		&t.TransactionNumber,
		&t.TransactionType,
		&t.Amount,
		&t.Currency,
		&t.BalanceBefore,
		&t.BalanceAfter,
		&counterparty,
		&t.Description,
		&t.ReferenceNumber,
		&t.Channel,
		&t.CreatedBy,
		&t.TransactionDate,
	)

	if counterparty.Valid {
		t.CounterpartyAccountID = &counterparty.UUID
	}

	return t, err
}

const createQuery = `
INSERT INTO
    transactions (account_id, transaction_number, transaction_type, amount,
        currency, balance_before, balance_after, counterparty_account_id,
        description, reference_number, channel, created_by)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING` + transactionColumns

// Create appends the ledger row and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var counterparty uuid.NullUUID
	if arg.CounterpartyAccountID != nil {
		counterparty = uuid.NullUUID{UUID: *arg.CounterpartyAccountID, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.TransactionNumber,
		arg.TransactionType,
		arg.Amount,
		arg.Currency,
		arg.BalanceBefore,
		arg.BalanceAfter,
		counterparty,
		arg.Description,
		arg.ReferenceNumber,
		arg.Channel,
		arg.CreatedBy,
	)

	t, err := scanTransaction(row.Scan)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_transaction_number_key":
				return t, domain.ErrSequenceConflict
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT` + transactionColumns + `
FROM transactions
WHERE id = $1
`

// Get returns the ledger row with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, getQuery, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listByAccountQuery = `
SELECT` + transactionColumns + `
FROM transactions
WHERE account_id = $1
ORDER BY transaction_date DESC
LIMIT $2 OFFSET $3
`

// ListByAccount returns the account's ledger rows, newest first.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
