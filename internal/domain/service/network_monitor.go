package service

import "context"

// NetworkMonitor reports whether the remote store is reachable.
type NetworkMonitor interface {
	// Reachable probes connectivity. It must return quickly and never block past ctx.
	Reachable(ctx context.Context) bool

	// Watch emits the reachability after every change until ctx is done.
	Watch(ctx context.Context) <-chan bool
}
