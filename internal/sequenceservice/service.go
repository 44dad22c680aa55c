// Package sequenceservice manages business logic layer of sequence numbering.
package sequenceservice

import (
	"context"
	"fmt"

	"github.com/corebank/miniledger/internal/domain"
)

// Repo provides data access layer interface needed by sequence service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package sequenceservice
type Repo interface {
	Increment(ctx context.Context, name, prefix string) (domain.SequenceCounter, error)
	Peek(ctx context.Context, name string) (domain.SequenceCounter, error)
	Reset(ctx context.Context, name string, value int64) error
}

// Service mints unique, prefixed, zero-padded business identifiers.
type Service struct {
	repo Repo
}

// New returns sequence service struct to manage sequence numbering logic.
func New(sr Repo) *Service {
	return &Service{repo: sr}
}

// Next consumes and formats the next value of the named counter. The numeric
// part is zero-padded to 7 digits and grows past that without overflowing.
func (s *Service) Next(ctx context.Context, name, prefix string) (string, error) {
	c, err := s.repo.Increment(ctx, name, prefix)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%07d", c.Prefix, c.LastValue), nil
}

// Peek returns the current value of the named counter without consuming it.
// Absent counters read as zero.
func (s *Service) Peek(ctx context.Context, name string) (int64, error) {
	c, err := s.repo.Peek(ctx, name)
	if err != nil {
		return 0, err
	}

	return c.LastValue, nil
}

// Reset is an administrative operation setting the counter to the given value.
func (s *Service) Reset(ctx context.Context, name string, value int64) error {
	return s.repo.Reset(ctx, name, value)
}
