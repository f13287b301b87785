// Package mapper translates between remote documents and entities.
//
// Field names are explicit string literals shared by every implementation of the remote store.
// Decoding never fails on a missing or mistyped optional field; it substitutes a default instead.
package mapper

import (
	"strings"
	"time"

	"pawsync/internal/domain/entity"
	"pawsync/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Document field names shared by every kind.
const (
	FieldClientID    = repository.FieldClientID
	FieldOwnerUserID = repository.FieldOwnerUserID
	FieldSubjectID   = "subjectId"
	FieldStatus      = "status"
	FieldDedupeKey   = repository.FieldDedupeKey
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)

// recordToDocument writes the shared record fields.
func recordToDocument(rec *entity.Record, dedupeKey *string) map[string]any {
	fields := map[string]any{
		FieldOwnerUserID: rec.OwnerUserID,
		FieldSubjectID:   rec.SubjectID,
		FieldStatus:      rec.Status.String(),
		FieldCreatedAt:   rec.CreatedAt.UTC(),
		FieldUpdatedAt:   rec.UpdatedAt.UTC(),
	}
	if rec.LocalID != uuid.Nil {
		fields[FieldClientID] = rec.LocalID.String()
	}
	if dedupeKey != nil {
		fields[FieldDedupeKey] = *dedupeKey
	}

	return fields
}

// recordFromDocument reads the shared record fields. It returns false when the document
// has no ID, owner or subject. An unknown status falls back to defaultStatus.
func recordFromDocument(doc repository.Document, defaultStatus entity.Status, valid func(entity.Status) bool) (entity.Record, bool) {
	owner := stringField(doc.Fields, FieldOwnerUserID)
	subject := stringField(doc.Fields, FieldSubjectID)
	if strings.TrimSpace(doc.ID) == "" || owner == "" || subject == "" {
		return entity.Record{}, false
	}

	status := entity.Status(stringField(doc.Fields, FieldStatus))
	if !valid(status) {
		status = defaultStatus
	}

	rec := entity.Record{
		LocalID:     uuidField(doc.Fields, FieldClientID),
		OwnerUserID: owner,
		SubjectID:   subject,
		Status:      status,
		CreatedAt:   timeField(doc.Fields, FieldCreatedAt),
		UpdatedAt:   timeField(doc.Fields, FieldUpdatedAt),
	}
	rec.SetRemoteID(doc.ID)

	return rec, true
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)

	return value
}

func floatField(fields map[string]any, key string) float64 {
	value, _ := toFloat(fields[key])

	return value
}

func uuidField(fields map[string]any, key string) uuid.UUID {
	id, err := uuid.Parse(stringField(fields, key))
	if err != nil {
		return uuid.Nil
	}

	return id
}

// timeField accepts native timestamps, RFC 3339 strings and Unix milliseconds.
func timeField(fields map[string]any, key string) time.Time {
	switch value := fields[key].(type) {
	case time.Time:
		return value.UTC()
	case *time.Time:
		if value != nil {
			return value.UTC()
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
			return parsed.UTC()
		}
	case int64:
		return time.UnixMilli(value).UTC()
	case float64:
		return time.UnixMilli(int64(value)).UTC()
	}

	return time.Time{}
}

// optionalTimeField returns nil for a missing or zero timestamp.
func optionalTimeField(fields map[string]any, key string) *time.Time {
	value := timeField(fields, key)
	if value.IsZero() {
		return nil
	}

	return &value
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// pointToField encodes a point as a lat/lng map. Remote documents cannot hold nested arrays.
func pointToField(p orb.Point) map[string]any {
	return map[string]any{"lat": p.Lat(), "lng": p.Lon()}
}

func pointFromField(value any) (orb.Point, bool) {
	fields, ok := value.(map[string]any)
	if !ok {
		return orb.Point{}, false
	}

	lat, latOK := toFloat(fields["lat"])
	lng, lngOK := toFloat(fields["lng"])
	if !latOK || !lngOK {
		return orb.Point{}, false
	}

	return orb.Point{lng, lat}, true
}

func routeToField(route orb.LineString) []any {
	points := make([]any, 0, len(route))
	for _, p := range route {
		points = append(points, pointToField(p))
	}

	return points
}

// routeFromField skips malformed points rather than dropping the route.
func routeFromField(value any) orb.LineString {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []map[string]any:
		for _, item := range v {
			items = append(items, item)
		}
	default:
		return orb.LineString{}
	}

	route := make(orb.LineString, 0, len(items))
	for _, item := range items {
		if p, ok := pointFromField(item); ok {
			route = append(route, p)
		}
	}

	return route
}
