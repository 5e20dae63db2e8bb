package server

import "context"

// Server defines the lifecycle contract of the notes API server.
type Server interface {
	// Run starts serving requests and blocks until the server stops.
	// A nil error means a graceful shutdown.
	Run(ctx context.Context) error
}
