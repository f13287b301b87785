package mapper

import (
	"pawsync/internal/domain/entity"
	"pawsync/internal/domain/repository"
	"pawsync/internal/domain/service"

	"github.com/paulmach/orb"
)

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldLocation    = "location"
	fieldScheduledAt = "scheduledAt"
)

type activityMapper struct{}

// NewActivityMapper returns the mapper for the activities collection.
func NewActivityMapper() service.Mapper[*entity.Activity] {
	return activityMapper{}
}

func (activityMapper) New() *entity.Activity {
	return &entity.Activity{Record: entity.Record{Status: entity.StatusScheduled}}
}

func (activityMapper) ToDocument(act *entity.Activity) map[string]any {
	fields := recordToDocument(&act.Record, act.DedupeKey())
	fields[fieldTitle] = act.Title
	fields[fieldDescription] = act.Description
	fields[fieldLocation] = pointToField(act.Location)
	fields[fieldScheduledAt] = act.ScheduledAt.UTC()

	return fields
}

func (m activityMapper) FromDocument(doc repository.Document) (*entity.Activity, bool) {
	act := m.New()

	rec, ok := recordFromDocument(doc, entity.StatusScheduled, act.ValidStatus)
	if !ok {
		return nil, false
	}

	act.Record = rec
	act.Title = stringField(doc.Fields, fieldTitle)
	act.Description = stringField(doc.Fields, fieldDescription)
	if location, ok := pointFromField(doc.Fields[fieldLocation]); ok {
		act.Location = location
	} else {
		act.Location = orb.Point{}
	}
	act.ScheduledAt = timeField(doc.Fields, fieldScheduledAt)

	return act, true
}
