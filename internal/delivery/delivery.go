// Package delivery defines the entry points that serve the application.
package delivery

import "context"

// Delivery is a long-running entry point started by the application lifecycle.
type Delivery interface {
	// Serve blocks until the delivery stops or fails.
	Serve(ctx context.Context) error
}
