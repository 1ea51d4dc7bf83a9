package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KNICEX/price-alert/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type recordingMail struct {
	failures int
	calls    int
	to       string
	subject  string
	body     string
}

func (m *recordingMail) SendText(ctx context.Context, to, subject, body string) error {
	m.calls++
	if m.calls <= m.failures {
		return errors.New("relay unreachable")
	}
	m.to, m.subject, m.body = to, subject, body
	return nil
}

func (m *recordingMail) SendHTML(ctx context.Context, to, subject, body string) error {
	return m.SendText(ctx, to, subject, body)
}

func TestRenderAlertMail(t *testing.T) {
	testCases := []struct {
		name        string
		direction   entity.Direction
		currency    entity.Currency
		threshold   string
		observed    string
		wantSubject string
		wantBody    string
	}{
		{
			name:        "above in inr",
			direction:   entity.DirectionAbove,
			currency:    entity.CurrencyINR,
			threshold:   "50000",
			observed:    "51000",
			wantSubject: "bitcoin price above ₹50,000.00",
			wantBody:    "The price of bitcoin is now ₹51,000.00, which is above your alert threshold of ₹50,000.00.",
		},
		{
			name:        "below in usd",
			direction:   entity.DirectionBelow,
			currency:    entity.CurrencyUSD,
			threshold:   "2000",
			observed:    "1900.5",
			wantSubject: "bitcoin price below $2,000.00",
			wantBody:    "The price of bitcoin is now $1,900.50, which is below your alert threshold of $2,000.00.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rule := mustRule(t, "bitcoin", tc.threshold, tc.direction, "a@x.com")
			subject, body := renderAlertMail(FiredAlert{
				Rule:          rule,
				ObservedPrice: decimal.RequireFromString(tc.observed),
			}, tc.currency)
			assert.Equal(t, tc.wantSubject, subject)
			assert.Equal(t, tc.wantBody, body)
		})
	}
}

func TestEmailNotifierSends(t *testing.T) {
	mail := &recordingMail{}
	n := NewEmailNotifier(mail)

	rule := mustRule(t, "solana", "100", entity.DirectionAbove, "a@x.com")
	err := n.Notify(context.Background(), FiredAlert{Rule: rule, ObservedPrice: decimal.NewFromInt(150)}, entity.CurrencyUSD)
	assert.NoError(t, err)
	assert.Equal(t, 1, mail.calls)
	assert.Equal(t, "a@x.com", mail.to)
	assert.Equal(t, "solana price above $100.00", mail.subject)
}

func TestEmailNotifierGivesUpAfterBoundedAttempts(t *testing.T) {
	mail := &recordingMail{failures: 10}
	n := NewEmailNotifier(mail, WithDispatchAttempts(2))

	rule := mustRule(t, "solana", "100", entity.DirectionAbove, "a@x.com")

	start := time.Now()
	err := n.Notify(context.Background(), FiredAlert{Rule: rule, ObservedPrice: decimal.NewFromInt(150)}, entity.CurrencyUSD)
	assert.Error(t, err)
	assert.Equal(t, 2, mail.calls)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestEmailNotifierRecoversOnRetry(t *testing.T) {
	mail := &recordingMail{failures: 1}
	n := NewEmailNotifier(mail, WithDispatchAttempts(3))

	rule := mustRule(t, "solana", "100", entity.DirectionAbove, "a@x.com")
	err := n.Notify(context.Background(), FiredAlert{Rule: rule, ObservedPrice: decimal.NewFromInt(150)}, entity.CurrencyUSD)
	assert.NoError(t, err)
	assert.Equal(t, 2, mail.calls)
}
