// Package static provides a price oracle that answers with a fixed,
// operator-configured SOL/USD rate. It stands in wherever a live price feed
// is unavailable or unnecessary.
package static

import (
	"context"
	"errors"

	"github.com/gabapcia/solrelay/internal/notify"
)

// ErrPriceNotConfigured indicates no rate was provided, so USD estimates
// must be omitted rather than fabricated.
var ErrPriceNotConfigured = errors.New("sol price not configured")

// Oracle reports a constant SOL/USD rate.
type Oracle struct {
	solPriceUSD float64
}

var _ notify.PriceOracle = (*Oracle)(nil)

// New creates an oracle answering with the given SOL/USD rate. A
// non-positive rate produces an oracle that always fails, which downstream
// formatting treats as "no estimate available".
func New(solPriceUSD float64) *Oracle {
	return &Oracle{
		solPriceUSD: solPriceUSD,
	}
}

// SolPriceUSD implements notify.PriceOracle.
func (o *Oracle) SolPriceUSD(ctx context.Context) (float64, error) {
	if o.solPriceUSD <= 0 {
		return 0, ErrPriceNotConfigured
	}
	return o.solPriceUSD, nil
}
