package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/KNICEX/price-alert/internal/entity"
	"github.com/shopspring/decimal"
)

// PricePoint is one sample of a historical price series, ordered oldest
// first.
type PricePoint struct {
	Time  time.Time
	Price decimal.Decimal
}

// Service is the external price feed. GetPrices must be one batched call
// per cycle regardless of how many assets are tracked; an asset the feed
// does not know is simply absent from the result map.
type Service interface {
	GetPrices(ctx context.Context, assets []string, currency entity.Currency) (map[string]entity.Quote, error)
	GetHistory(ctx context.Context, asset string, currency entity.Currency, days int) ([]PricePoint, error)
}

// FetchError wraps any transport, status or decoding failure from a
// price feed. The caller treats it as "no data this cycle" and keeps the
// pending alert set untouched.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s quote fetch failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
