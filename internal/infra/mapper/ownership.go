package mapper

import (
	"pawsync/internal/domain/entity"
	"pawsync/internal/domain/repository"
	"pawsync/internal/domain/service"
)

const (
	fieldShelterID = "shelterId"
	fieldMessage   = "message"
)

type ownershipMapper struct{}

// NewOwnershipMapper returns the mapper for the ownership requests collection.
func NewOwnershipMapper() service.Mapper[*entity.OwnershipRequest] {
	return ownershipMapper{}
}

func (ownershipMapper) New() *entity.OwnershipRequest {
	return &entity.OwnershipRequest{Record: entity.Record{Status: entity.StatusPending}}
}

func (ownershipMapper) ToDocument(req *entity.OwnershipRequest) map[string]any {
	fields := recordToDocument(&req.Record, req.DedupeKey())
	fields[fieldShelterID] = req.ShelterID
	fields[fieldMessage] = req.Message

	return fields
}

func (m ownershipMapper) FromDocument(doc repository.Document) (*entity.OwnershipRequest, bool) {
	req := m.New()

	rec, ok := recordFromDocument(doc, entity.StatusPending, req.ValidStatus)
	if !ok {
		return nil, false
	}

	req.Record = rec
	req.ShelterID = stringField(doc.Fields, fieldShelterID)
	req.Message = stringField(doc.Fields, fieldMessage)

	return req, true
}
