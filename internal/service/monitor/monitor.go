package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KNICEX/price-alert/internal/entity"
	"github.com/KNICEX/price-alert/internal/repo"
	"github.com/KNICEX/price-alert/internal/service/quotes"
)

// AlertMonitor 预警监控服务
// One Check is one cycle: fetch quotes for the tracked set in a single
// batched call, evaluate the pending rules against them, dispatch what
// fired. A fetch failure skips the whole cycle and leaves the pending
// set untouched.
type AlertMonitor struct {
	quoteSvc quotes.Service
	repo     repo.AlertRepo
	notifier Notifier

	assets   []string
	currency entity.Currency

	mu         sync.RWMutex
	lastQuotes map[string]entity.Quote
	lastUpdate time.Time

	now func() time.Time
}

type Option func(m *AlertMonitor)

func WithNotifier(notifier Notifier) Option {
	return func(m *AlertMonitor) {
		m.notifier = notifier
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *AlertMonitor) {
		m.now = now
	}
}

func NewAlertMonitor(quoteSvc quotes.Service, alertRepo repo.AlertRepo, assets []string, currency entity.Currency, opts ...Option) *AlertMonitor {
	m := &AlertMonitor{
		quoteSvc: quoteSvc,
		repo:     alertRepo,
		assets:   assets,
		currency: currency,
		notifier: consoleNotifier{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *AlertMonitor) Check(ctx context.Context) error {
	prices, err := m.quoteSvc.GetPrices(ctx, m.assets, m.currency)
	if err != nil {
		// no data this cycle; pending alerts stay exactly as they were
		return fmt.Errorf("fetch quotes: %w", err)
	}

	m.mu.Lock()
	m.lastQuotes = prices
	m.lastUpdate = m.now()
	m.mu.Unlock()

	pending := m.repo.Pending()
	fired := Evaluate(prices, pending)
	for _, f := range fired {
		if !m.repo.Remove(f.Rule) {
			// cleared by the operator between the snapshot and now
			continue
		}
		if err = m.notifier.Notify(ctx, f, m.currency); err != nil {
			slog.Error("alert dispatch failed, rule returned to pending",
				"asset", f.Rule.Asset,
				"recipient", f.Rule.Recipient,
				"threshold", f.Rule.Threshold,
				"error", err)
			m.repo.Add(f.Rule)
			continue
		}
		m.repo.AppendEvent(entity.AlertEvent{
			FiredAt:       m.now(),
			Asset:         f.Rule.Asset,
			Direction:     f.Rule.Direction,
			Threshold:     f.Rule.Threshold,
			ObservedPrice: f.ObservedPrice,
			Recipient:     f.Rule.Recipient,
			Currency:      m.currency,
		})
		slog.Info("alert fired",
			"asset", f.Rule.Asset,
			"direction", f.Rule.Direction,
			"threshold", f.Rule.Threshold,
			"observed", f.ObservedPrice)
	}
	return nil
}

// LatestQuotes returns the snapshot taken by the most recent successful
// cycle and when it was taken.
func (m *AlertMonitor) LatestQuotes() (map[string]entity.Quote, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]entity.Quote, len(m.lastQuotes))
	for asset, q := range m.lastQuotes {
		out[asset] = q
	}
	return out, m.lastUpdate
}

func (m *AlertMonitor) Currency() entity.Currency {
	return m.currency
}
