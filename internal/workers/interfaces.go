// Package workers runs the client's background jobs.
//
// A [Worker] is started once with a parent context and stopped when the
// dashboard exits. [Workers] starts and stops a group of them together.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start launches the job and returns immediately; calling it again restarts
// the job. Stop cancels the job and blocks until it has exited. Stop is a
// no-op when the job is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
