package mapper

import (
	"pawsync/internal/domain/entity"
	"pawsync/internal/domain/repository"
	"pawsync/internal/domain/service"
)

const (
	fieldRoute          = "route"
	fieldDistanceMeters = "distanceMeters"
	fieldStartedAt      = "startedAt"
	fieldEndedAt        = "endedAt"
	fieldMedal          = "medal"
)

type walkMapper struct{}

// NewWalkMapper returns the mapper for the walks collection.
func NewWalkMapper() service.Mapper[*entity.Walk] {
	return walkMapper{}
}

func (walkMapper) New() *entity.Walk {
	return &entity.Walk{
		Record: entity.Record{Status: entity.StatusInProgress},
		Medal:  entity.MedalNone,
	}
}

func (walkMapper) ToDocument(walk *entity.Walk) map[string]any {
	fields := recordToDocument(&walk.Record, walk.DedupeKey())
	fields[fieldRoute] = routeToField(walk.Route)
	fields[fieldDistanceMeters] = walk.DistanceMeters
	fields[fieldStartedAt] = walk.StartedAt.UTC()
	fields[fieldMedal] = string(walk.Medal)
	if walk.EndedAt != nil {
		fields[fieldEndedAt] = walk.EndedAt.UTC()
	}

	return fields
}

func (m walkMapper) FromDocument(doc repository.Document) (*entity.Walk, bool) {
	walk := m.New()

	rec, ok := recordFromDocument(doc, entity.StatusInProgress, walk.ValidStatus)
	if !ok {
		return nil, false
	}

	walk.Record = rec
	walk.Route = routeFromField(doc.Fields[fieldRoute])
	walk.DistanceMeters = floatField(doc.Fields, fieldDistanceMeters)
	walk.StartedAt = timeField(doc.Fields, fieldStartedAt)
	walk.EndedAt = optionalTimeField(doc.Fields, fieldEndedAt)
	walk.Medal = entity.ParseMedal(stringField(doc.Fields, fieldMedal))

	return walk, true
}
