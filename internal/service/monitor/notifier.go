package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KNICEX/price-alert/internal/entity"
	"github.com/KNICEX/price-alert/internal/service/notification"
	"github.com/KNICEX/price-alert/pkg/decimalx"
	"github.com/jpillora/backoff"
)

const (
	defaultDispatchTimeout  = 30 * time.Second
	defaultDispatchAttempts = 3
)

type consoleNotifier struct {
}

func (c consoleNotifier) Notify(ctx context.Context, fired FiredAlert, currency entity.Currency) error {
	subject, body := renderAlertMail(fired, currency)
	fmt.Println(subject, "-", body)
	return nil
}

// EmailNotifier 邮件通知
// Each dispatch is bounded by a timeout and retried with exponential
// backoff, so a slow relay never stalls the refresh loop for long.
type EmailNotifier struct {
	mail     notification.EmailService
	timeout  time.Duration
	attempts int
}

type EmailOption func(n *EmailNotifier)

func WithDispatchTimeout(timeout time.Duration) EmailOption {
	return func(n *EmailNotifier) {
		n.timeout = timeout
	}
}

func WithDispatchAttempts(attempts int) EmailOption {
	return func(n *EmailNotifier) {
		n.attempts = attempts
	}
}

func NewEmailNotifier(mail notification.EmailService, opts ...EmailOption) *EmailNotifier {
	n := &EmailNotifier{
		mail:     mail,
		timeout:  defaultDispatchTimeout,
		attempts: defaultDispatchAttempts,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *EmailNotifier) Notify(ctx context.Context, fired FiredAlert, currency entity.Currency) error {
	subject, body := renderAlertMail(fired, currency)

	bo := &backoff.Backoff{
		Min:    time.Second,
		Max:    30 * time.Second,
		Factor: 2,
		Jitter: true,
	}
	var lastErr error
	for attempt := 1; attempt <= n.attempts; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
		err := n.mail.SendText(sendCtx, fired.Rule.Recipient, subject, body)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		slog.Warn("alert mail send failed",
			"asset", fired.Rule.Asset,
			"recipient", fired.Rule.Recipient,
			"attempt", attempt,
			"error", err)

		if attempt == n.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(bo.Duration()):
		}
	}
	return fmt.Errorf("dispatch failed after %d attempts: %w", n.attempts, lastErr)
}

// renderAlertMail keeps the exact wording the operator-facing product
// always used: "<asset> price above ₹50,000.00".
func renderAlertMail(fired FiredAlert, currency entity.Currency) (subject, body string) {
	symbol := currency.Symbol()
	threshold := decimalx.Money(symbol, fired.Rule.Threshold, 2)
	observed := decimalx.Money(symbol, fired.ObservedPrice, 2)

	subject = fmt.Sprintf("%s price %s %s", fired.Rule.Asset, fired.Rule.Direction, threshold)
	body = fmt.Sprintf("The price of %s is now %s, which is %s your alert threshold of %s.",
		fired.Rule.Asset, observed, fired.Rule.Direction, threshold)
	return subject, body
}
