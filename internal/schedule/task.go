package schedule

import "context"

// Task is one unit of scheduled work. Run should return promptly on ctx
// cancellation; an error only fails the current run, never the schedule.
type Task interface {
	Run(ctx context.Context) error
	Name() string
}
