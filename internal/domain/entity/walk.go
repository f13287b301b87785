package entity

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Walk is a GPS tracked dog walk.
type Walk struct {
	Record

	Route          orb.LineString `json:"route"` // Points are (longitude, latitude).
	DistanceMeters float64        `json:"distance_meters"`
	StartedAt      time.Time      `json:"started_at"`
	EndedAt        *time.Time     `json:"ended_at,omitempty"`
	Medal          Medal          `json:"medal"`
}

// Kind implements Syncable.
func (w *Walk) Kind() Kind {
	return KindWalk
}

// DedupeKey implements Syncable. Walks are never deduplicated.
func (w *Walk) DedupeKey() *string {
	return nil
}

// ValidStatus implements Syncable.
func (w *Walk) ValidStatus(status Status) bool {
	return status == StatusInProgress || status == StatusFinished
}

// InProgress reports whether the walk still accepts points.
func (w *Walk) InProgress() bool {
	return w.Status == StatusInProgress
}

// AppendPoint adds a tracked position to the route.
func (w *Walk) AppendPoint(p orb.Point) {
	w.Route = append(w.Route, p)
}

// Duration returns the elapsed walk time, measured up to now while in progress.
func (w *Walk) Duration(now time.Time) time.Duration {
	end := now
	if w.EndedAt != nil {
		end = *w.EndedAt
	}
	if end.Before(w.StartedAt) {
		return 0
	}

	return end.Sub(w.StartedAt)
}

// Finish closes the walk: it computes the route length, awards the medal and sets the status.
func (w *Walk) Finish(now time.Time) {
	w.DistanceMeters = RouteLength(w.Route)
	w.Medal = MedalFor(w.DistanceMeters)
	w.EndedAt = &now
	w.Status = StatusFinished
}

// RouteLength sums the haversine distance between consecutive route points, in meters.
func RouteLength(route orb.LineString) float64 {
	var total float64
	for i := 1; i < len(route); i++ {
		total += geo.DistanceHaversine(route[i-1], route[i])
	}

	return total
}
