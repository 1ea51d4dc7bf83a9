package monitor

import (
	"context"

	"github.com/KNICEX/price-alert/internal/schedule"
)

type CheckTask struct {
	monitor *AlertMonitor
}

func NewCheckTask(monitor *AlertMonitor) schedule.Task {
	return &CheckTask{
		monitor: monitor,
	}
}

func (t *CheckTask) Run(ctx context.Context) error {
	return t.monitor.Check(ctx)
}

func (t *CheckTask) Name() string {
	return "price alert check task"
}
