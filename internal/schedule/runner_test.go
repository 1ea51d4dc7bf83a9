package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingTask struct {
	runs atomic.Int64
	err  error
}

func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	return t.err
}

func (t *countingTask) Name() string {
	return "counting task"
}

func TestIntervalRunnerRunsImmediatelyThenOnTicks(t *testing.T) {
	task := &countingTask{}
	runner := NewIntervalRunner(task, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, task.runs.Load(), int64(3))
}

func TestIntervalRunnerSurvivesTaskErrors(t *testing.T) {
	task := &countingTask{err: errors.New("boom")}
	runner := NewIntervalRunner(task, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancel()

	err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, task.runs.Load(), int64(2), "a failing task must not stop the loop")
}
