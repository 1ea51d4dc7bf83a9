package monitor

import (
	"context"

	"github.com/KNICEX/price-alert/internal/entity"
	"github.com/shopspring/decimal"
)

// FiredAlert pairs a rule whose condition was just satisfied with the
// price that satisfied it.
type FiredAlert struct {
	Rule          entity.AlertRule
	ObservedPrice decimal.Decimal
}

// Notifier delivers one fired alert. An error means the notification was
// not delivered; the caller decides what happens to the rule.
type Notifier interface {
	Notify(ctx context.Context, fired FiredAlert, currency entity.Currency) error
}
