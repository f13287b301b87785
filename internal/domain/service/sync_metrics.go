package service

import "time"

// SyncMetrics observes the sync pipeline so silent policies stay visible in production.
type SyncMetrics interface {
	// DocumentDropped counts a remote document the mapper rejected.
	DocumentDropped(kind string)

	// RemoteWrite counts a remote write outcome.
	RemoteWrite(kind string, op SyncOperation, outcome SyncOutcome)

	// ObserveSyncPass records the duration of a pending-sync pass.
	ObserveSyncPass(kind string, duration time.Duration)
}
