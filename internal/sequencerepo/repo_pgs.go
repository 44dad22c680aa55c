// Package sequencerepo manages repository layer of named sequence counters.
package sequencerepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/corebank/miniledger/internal/domain"
	"github.com/corebank/miniledger/pkg/dbpkg"
	"github.com/corebank/miniledger/pkg/errorspkg"
)

// RepoPGS facilitates sequence counter repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns sequence counter RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// The read-increment-write runs as a single statement so concurrent callers
// serialize on the row lock taken by the upsert. The stored prefix wins over
// the one supplied with the call.
const incrementQuery = `
INSERT INTO
    sequence_counters (name, prefix, last_value)
VALUES
    ($1, $2, 1)
ON CONFLICT (name) DO UPDATE
    SET last_value = sequence_counters.last_value + 1
RETURNING name, prefix, last_value
`

// Increment advances the named counter by one, creating it at 1 if absent,
// and returns the consumed value.
func (r *RepoPGS) Increment(ctx context.Context, name, prefix string) (domain.SequenceCounter, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, incrementQuery, name, prefix)

	var c domain.SequenceCounter

	err := row.Scan(&c.Name, &c.Prefix, &c.LastValue)
	if err != nil {
		l.Error().Err(err).Str("sequence", name).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505", "40001":
				return c, domain.ErrSequenceConflict
			}
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const peekQuery = `
SELECT name, prefix, last_value FROM sequence_counters
WHERE name = $1
`

// Peek returns the counter without consuming a value. A counter that does not
// exist yet reads as zero.
func (r *RepoPGS) Peek(ctx context.Context, name string) (domain.SequenceCounter, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, peekQuery, name)

	var c domain.SequenceCounter

	err := row.Scan(&c.Name, &c.Prefix, &c.LastValue)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.SequenceCounter{Name: name}, nil
		}

		l.Error().Err(err).Str("sequence", name).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const resetQuery = `
UPDATE sequence_counters
SET last_value = $2
WHERE name = $1
`

// Reset sets the counter to the given value. Missing counters are a no-op.
func (r *RepoPGS) Reset(ctx context.Context, name string, value int64) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, resetQuery, name, value); err != nil {
		l.Error().Err(err).Str("sequence", name).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
