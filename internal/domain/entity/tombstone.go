package entity

import "time"

// Tombstone remembers a remote document whose deletion has not been confirmed.
// Fetches skip tombstoned documents and sync passes retry the delete.
type Tombstone struct {
	Kind        Kind      `json:"kind"`
	RemoteID    string    `json:"remote_id"`
	OwnerUserID string    `json:"owner_user_id"`
	Attempts    int       `json:"attempts"`
	LastError   string    `json:"last_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
