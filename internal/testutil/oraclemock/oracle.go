package oraclemock

import (
	"context"
	"errors"

	"custodian-bank/internal/domain/oracle"
)

var _ oracle.PriceOracle = (*Oracle)(nil)

// Oracle is a function-backed PriceOracle for simulating rate feeds and
// collaborator failures.
type Oracle struct {
	RateFn func(ctx context.Context) (int64, error)
}

func (m *Oracle) Rate(ctx context.Context) (int64, error) {
	if m.RateFn != nil {
		return m.RateFn(ctx)
	}
	return 0, errors.New("oraclemock: RateFn not set")
}
