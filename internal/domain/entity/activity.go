package entity

import (
	"time"

	"github.com/paulmach/orb"
)

// Activity is a shelter activity (volunteering, visit, group walk) scheduled by a user.
type Activity struct {
	Record

	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    orb.Point `json:"location"` // (longitude, latitude)
	ScheduledAt time.Time `json:"scheduled_at"`
}

// Kind implements Syncable.
func (a *Activity) Kind() Kind {
	return KindActivity
}

// DedupeKey implements Syncable. Activities are never deduplicated.
func (a *Activity) DedupeKey() *string {
	return nil
}

// ValidStatus implements Syncable.
func (a *Activity) ValidStatus(status Status) bool {
	switch status {
	case StatusScheduled, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}
