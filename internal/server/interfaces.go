package server

import "context"

// Server defines the lifecycle contract of the process-level server managed
// by this package.
//
// Implementations are expected to block in [RunServer] until shutdown is
// requested and to release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops
	// because of a termination signal or a fatal error.
	RunServer() error

	// Shutdown gracefully stops the server, waiting at most until ctx is done.
	Shutdown(ctx context.Context) error
}
