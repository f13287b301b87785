// Package lifecycle holds timeouts shared by startup and shutdown hooks.
package lifecycle

import "time"

const (
	// DefaultTimeout bounds startup pings and graceful shutdowns.
	DefaultTimeout = 10 * time.Second

	// DrainTimeout bounds how long in-flight background writes may finish on shutdown.
	DrainTimeout = 20 * time.Second
)
