package monitor

import (
	"testing"
	"time"

	"github.com/KNICEX/price-alert/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mustRule(t *testing.T, asset string, threshold string, dir entity.Direction, recipient string) entity.AlertRule {
	t.Helper()
	r, err := entity.NewAlertRule(asset, decimal.RequireFromString(threshold), dir, recipient)
	assert.NoError(t, err)
	return r
}

func quoteMap(pairs map[string]string) map[string]entity.Quote {
	out := make(map[string]entity.Quote, len(pairs))
	for asset, price := range pairs {
		out[asset] = entity.Quote{
			Asset:    asset,
			Price:    decimal.RequireFromString(price),
			Currency: entity.CurrencyUSD,
		}
	}
	return out
}

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		name      string
		prices    map[string]string
		pending   []entity.AlertRule
		wantFired int
		wantPrice string
	}{
		{
			name:   "above threshold crossed",
			prices: map[string]string{"bitcoin": "51000"},
			pending: []entity.AlertRule{
				mustRule(t, "bitcoin", "50000", entity.DirectionAbove, "a@x.com"),
			},
			wantFired: 1,
			wantPrice: "51000",
		},
		{
			name:   "below not reached",
			prices: map[string]string{"ethereum": "2500"},
			pending: []entity.AlertRule{
				mustRule(t, "ethereum", "2000", entity.DirectionBelow, "b@x.com"),
			},
			wantFired: 0,
		},
		{
			name:   "below threshold crossed",
			prices: map[string]string{"ethereum": "1900"},
			pending: []entity.AlertRule{
				mustRule(t, "ethereum", "2000", entity.DirectionBelow, "b@x.com"),
			},
			wantFired: 1,
			wantPrice: "1900",
		},
		{
			name:   "exactly on threshold fires above",
			prices: map[string]string{"bitcoin": "50000"},
			pending: []entity.AlertRule{
				mustRule(t, "bitcoin", "50000", entity.DirectionAbove, "a@x.com"),
			},
			wantFired: 1,
			wantPrice: "50000",
		},
		{
			name:   "exactly on threshold fires below",
			prices: map[string]string{"bitcoin": "50000"},
			pending: []entity.AlertRule{
				mustRule(t, "bitcoin", "50000", entity.DirectionBelow, "a@x.com"),
			},
			wantFired: 1,
			wantPrice: "50000",
		},
		{
			name:   "asset without quote stays pending",
			prices: map[string]string{"bitcoin": "51000"},
			pending: []entity.AlertRule{
				mustRule(t, "cardano", "1", entity.DirectionAbove, "a@x.com"),
			},
			wantFired: 0,
		},
		{
			name:   "zero price treated as not yet priced",
			prices: map[string]string{"dogecoin": "0"},
			pending: []entity.AlertRule{
				mustRule(t, "dogecoin", "0.1", entity.DirectionBelow, "a@x.com"),
			},
			wantFired: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fired := Evaluate(quoteMap(tc.prices), tc.pending)
			assert.Len(t, fired, tc.wantFired)
			if tc.wantFired > 0 {
				assert.True(t, fired[0].ObservedPrice.Equal(decimal.RequireFromString(tc.wantPrice)))
			}
		})
	}
}

func TestEvaluateDuplicatesFireInInsertionOrder(t *testing.T) {
	first := mustRule(t, "solana", "100", entity.DirectionAbove, "a@x.com")
	time.Sleep(time.Millisecond) // distinct CreatedAt
	second := mustRule(t, "solana", "100", entity.DirectionAbove, "a@x.com")

	fired := Evaluate(quoteMap(map[string]string{"solana": "150"}), []entity.AlertRule{first, second})
	assert.Len(t, fired, 2, "duplicate rules each fire on their own")
	assert.True(t, fired[0].Rule.Equal(first))
	assert.True(t, fired[1].Rule.Equal(second))
}

func TestEvaluateMixedPending(t *testing.T) {
	pending := []entity.AlertRule{
		mustRule(t, "bitcoin", "50000", entity.DirectionAbove, "a@x.com"),
		mustRule(t, "ethereum", "2000", entity.DirectionBelow, "b@x.com"),
		mustRule(t, "cardano", "1", entity.DirectionAbove, "c@x.com"),
	}
	prices := quoteMap(map[string]string{
		"bitcoin":  "51000",
		"ethereum": "2500",
	})

	fired := Evaluate(prices, pending)
	assert.Len(t, fired, 1)
	assert.Equal(t, "bitcoin", fired[0].Rule.Asset)
}
