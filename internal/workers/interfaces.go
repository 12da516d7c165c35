// Package workers runs the application's background jobs.
package workers

import "context"

// Worker is a background job. Run must not block: implementations start
// their own goroutine and stop when ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// HealthChecker is anything that can tell whether a dependency answers.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// StatusReporter receives the outcome of each probe.
type StatusReporter interface {
	SetIdentityServing(serving bool)
}
