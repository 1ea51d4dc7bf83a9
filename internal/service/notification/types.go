package notification

import (
	"context"
	"errors"
)

// ErrDispatch marks a delivery failure (connection, auth, timeout).
// Callers decide the retry policy; the transport itself never retries.
var ErrDispatch = errors.New("notification dispatch failed")

// EmailService is the outbound mail transport. Implementations must
// honor ctx cancellation so a hanging relay cannot stall a caller
// indefinitely.
type EmailService interface {
	SendText(ctx context.Context, to, subject, body string) error
	SendHTML(ctx context.Context, to, subject, body string) error
}
