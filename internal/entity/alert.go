package entity

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidThreshold = errors.New("alert threshold must be greater than zero")
	ErrInvalidRecipient = errors.New("invalid recipient address")
	ErrInvalidDirection = errors.New("invalid alert direction")
)

type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionAbove, DirectionBelow:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// AlertRule 价格预警规则
// Rules are value types and never mutated after creation, a rule that
// fires is removed, not flagged.
type AlertRule struct {
	Asset     string
	Threshold decimal.Decimal
	Direction Direction
	Recipient string
	CreatedAt time.Time
}

// NewAlertRule validates at the boundary so nothing downstream has to.
// Recipient syntax is checked once here, never again.
func NewAlertRule(asset string, threshold decimal.Decimal, direction Direction, recipient string) (AlertRule, error) {
	if asset == "" {
		return AlertRule{}, errors.New("alert asset must not be empty")
	}
	if !threshold.IsPositive() {
		return AlertRule{}, fmt.Errorf("%w: %s", ErrInvalidThreshold, threshold)
	}
	if _, err := ParseDirection(string(direction)); err != nil {
		return AlertRule{}, err
	}
	addr, err := mail.ParseAddress(recipient)
	if err != nil {
		return AlertRule{}, fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient)
	}
	return AlertRule{
		Asset:     asset,
		Threshold: threshold,
		Direction: direction,
		Recipient: addr.Address,
		CreatedAt: time.Now(),
	}, nil
}

// Equal reports structural equality. Two separately submitted but
// identical rules are still distinct entries in the pending set; removal
// takes the first match in insertion order.
func (r AlertRule) Equal(other AlertRule) bool {
	return r.Asset == other.Asset &&
		r.Threshold.Equal(other.Threshold) &&
		r.Direction == other.Direction &&
		r.Recipient == other.Recipient &&
		r.CreatedAt.Equal(other.CreatedAt)
}

// AlertEvent 已触发预警的日志条目
// Append-only, created once per successfully dispatched notification.
type AlertEvent struct {
	FiredAt       time.Time
	Asset         string
	Direction     Direction
	Threshold     decimal.Decimal
	ObservedPrice decimal.Decimal
	Recipient     string
	Currency      Currency
}
