// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SyncState describes where a record currently lives.
type SyncState string

const (
	// SyncStateLocalOnly means the record has not been confirmed by the remote store yet.
	SyncStateLocalOnly SyncState = "LOCAL_ONLY"
	// SyncStateSynced means the record carries a remote document ID.
	SyncStateSynced SyncState = "SYNCED"
)

// Record holds the sync bookkeeping shared by every entity kept in the local cache
// and mirrored to the remote document store.
type Record struct {
	LocalID     uuid.UUID `json:"local_id"`            // Assigned on local insert.
	RemoteID    *string   `json:"remote_id,omitempty"` // Assigned once the remote write succeeds.
	OwnerUserID string    `json:"owner_user_id"`       // The user who owns this record.
	SubjectID   string    `json:"subject_id"`          // What the record is about (animal, dog, shelter).
	Status      Status    `json:"status"`
	Dirty       bool      `json:"dirty"` // A local update is waiting to be mirrored remotely.
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Meta exposes the embedded record so generic code can reach it through any entity.
func (r *Record) Meta() *Record {
	return r
}

// SyncState derives the record state from the remote ID.
func (r *Record) SyncState() SyncState {
	if r.RemoteID == nil || *r.RemoteID == "" {
		return SyncStateLocalOnly
	}

	return SyncStateSynced
}

// IsSynced reports whether the record has a remote document.
func (r *Record) IsSynced() bool {
	return r.SyncState() == SyncStateSynced
}

// RemoteIDValue returns the remote ID or an empty string.
func (r *Record) RemoteIDValue() string {
	if r.RemoteID == nil {
		return ""
	}

	return *r.RemoteID
}

// SetRemoteID stores a copy of id as the remote ID.
func (r *Record) SetRemoteID(id string) {
	r.RemoteID = &id
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now when CreatedAt is unset.
func (r *Record) InitTimestamps(now time.Time) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (r *Record) Touch(now time.Time) {
	r.UpdatedAt = now
}

// DedupeKey builds the uniqueness key for an (owner, subject) pair.
func DedupeKey(ownerUserID, subjectID string) string {
	return ownerUserID + "|" + subjectID
}

// Syncable is implemented by every entity that flows through the sync coordinator.
type Syncable interface {
	// Meta returns the embedded sync record.
	Meta() *Record

	// Kind returns the entity kind, which doubles as the remote collection name.
	Kind() Kind

	// DedupeKey returns the uniqueness key while the entity must be unique, or nil.
	DedupeKey() *string

	// ValidStatus reports whether status is allowed for this entity.
	ValidStatus(status Status) bool
}
