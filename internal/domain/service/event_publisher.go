package service

import (
	"context"
	"time"
)

// SyncOperation names the remote operation a sync event reports on.
type SyncOperation string

const (
	SyncOperationCreate SyncOperation = "create"
	SyncOperationUpdate SyncOperation = "update"
	SyncOperationDelete SyncOperation = "delete"
)

// SyncOutcome is the result of a remote operation.
type SyncOutcome string

const (
	// SyncOutcomeSynced means the remote store confirmed the write.
	SyncOutcomeSynced SyncOutcome = "synced"
	// SyncOutcomeLocalOnly means the write was kept locally for a later sync pass.
	SyncOutcomeLocalOnly SyncOutcome = "local_only"
	// SyncOutcomeFailed means the remote write failed and the caller was told.
	SyncOutcomeFailed SyncOutcome = "failed"
)

// SyncEvent describes the completion of a remote write for a record.
type SyncEvent struct {
	RequestID   string        `json:"request_id,omitempty"` // For distributed tracing
	Kind        string        `json:"kind"`
	LocalID     string        `json:"local_id,omitempty"`
	RemoteID    string        `json:"remote_id,omitempty"`
	OwnerUserID string        `json:"owner_user_id"`
	Operation   SyncOperation `json:"operation"`
	Outcome     SyncOutcome   `json:"outcome"`
	Error       string        `json:"error,omitempty"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing sync events to a message queue
type EventPublisher interface {
	// PublishSyncEvent publishes the outcome of a remote write
	PublishSyncEvent(ctx context.Context, event *SyncEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
