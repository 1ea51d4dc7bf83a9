package schedule

import (
	"context"
	"log/slog"
	"time"
)

// IntervalRunner 定时任务循环
// Runs the task once immediately and then on every tick until the
// context is cancelled. The inter-cycle wait is the loop's only
// suspension point; task errors are logged and the next tick proceeds.
type IntervalRunner struct {
	task     Task
	interval time.Duration
}

func NewIntervalRunner(task Task, interval time.Duration) *IntervalRunner {
	return &IntervalRunner{
		task:     task,
		interval: interval,
	}
}

func (r *IntervalRunner) Run(ctx context.Context) error {
	r.runOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *IntervalRunner) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := r.task.Run(ctx); err != nil {
		slog.Error("scheduled task failed", "task", r.task.Name(), "error", err)
	}
}
