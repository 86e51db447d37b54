package oracle

import (
	"context"

	domain "custodian-bank/internal/domain/oracle"
)

// Fixed returns a constant rate; used in tests and single-node setups that
// pin the exchange rate by configuration.
type Fixed struct{ Value int64 }

func (f Fixed) Rate(context.Context) (int64, error) {
	if f.Value <= 0 {
		return 0, domain.ErrUnavailable
	}
	return f.Value, nil
}
