package entity

// Kind identifies an entity type. It is also the remote collection name.
type Kind string

const (
	KindFavorite  Kind = "favorites"
	KindOwnership Kind = "ownerships"
	KindWalk      Kind = "walks"
	KindActivity  Kind = "activities"
)

// AllKinds lists every kind handled by the sync agent.
func AllKinds() []Kind {
	return []Kind{KindFavorite, KindOwnership, KindWalk, KindActivity}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// Status is the entity specific lifecycle state.
type Status string

const (
	// Favorite statuses.
	StatusActive Status = "ACTIVE"

	// Ownership request statuses.
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"

	// Walk statuses.
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"

	// Activity statuses.
	StatusScheduled Status = "SCHEDULED"
	StatusDone      Status = "DONE"
	StatusCancelled Status = "CANCELLED"
)

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
