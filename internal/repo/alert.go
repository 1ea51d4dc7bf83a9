package repo

import (
	"sync"

	"github.com/KNICEX/price-alert/internal/entity"
)

// AlertRepo owns the pending alert set and the fired-alert log.
// Pending returns a copy taken under the lock, so a cycle evaluating a
// snapshot never sees rules added mid-flight; they surface next cycle.
type AlertRepo interface {
	Add(rule entity.AlertRule)
	Pending() []entity.AlertRule
	Remove(rule entity.AlertRule) bool
	AppendEvent(event entity.AlertEvent)
	Events() []entity.AlertEvent
	ClearPending()
	ClearLog()
}

type memoryAlertRepo struct {
	mu      sync.Mutex
	pending []entity.AlertRule
	events  []entity.AlertEvent
}

// NewMemoryAlertRepo builds the in-memory store. Everything is lost on
// restart, which is the intended lifecycle for this service.
func NewMemoryAlertRepo() AlertRepo {
	return &memoryAlertRepo{}
}

// Add appends without deduplication: two identical submissions are two
// rules and each notifies on its own.
func (r *memoryAlertRepo) Add(rule entity.AlertRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, rule)
}

// Pending returns a snapshot in insertion order.
func (r *memoryAlertRepo) Pending() []entity.AlertRule {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.AlertRule, len(r.pending))
	copy(out, r.pending)
	return out
}

// Remove deletes the first structurally equal rule and reports whether
// anything was removed.
func (r *memoryAlertRepo) Remove(rule entity.AlertRule) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.pending {
		if p.Equal(rule) {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (r *memoryAlertRepo) AppendEvent(event entity.AlertEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *memoryAlertRepo) Events() []entity.AlertEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.AlertEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ClearPending drops pending rules only; the fired log is cleared by
// ClearLog. The two are deliberately independent operations.
func (r *memoryAlertRepo) ClearPending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = nil
}

func (r *memoryAlertRepo) ClearLog() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
