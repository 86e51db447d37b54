package oracle

import (
	"context"
	"errors"
)

var (
	// ErrStaleRate means the published rate is older than the configured
	// maximum age and must not be used to size collateral.
	ErrStaleRate   = errors.New("oracle: published rate is stale")
	ErrUnavailable = errors.New("oracle: no rate published")
)

// PriceOracle supplies the exchange rate between the native asset and reward
// credits: one native unit is worth Rate credit units.
type PriceOracle interface {
	Rate(ctx context.Context) (int64, error)
}
