package mapper

import (
	"pawsync/internal/domain/entity"
	"pawsync/internal/domain/repository"
	"pawsync/internal/domain/service"
)

const (
	fieldAnimalName = "animalName"
	fieldImageURL   = "imageUrl"
)

type favoriteMapper struct{}

// NewFavoriteMapper returns the mapper for the favorites collection.
func NewFavoriteMapper() service.Mapper[*entity.Favorite] {
	return favoriteMapper{}
}

func (favoriteMapper) New() *entity.Favorite {
	return &entity.Favorite{Record: entity.Record{Status: entity.StatusActive}}
}

func (favoriteMapper) ToDocument(fav *entity.Favorite) map[string]any {
	fields := recordToDocument(&fav.Record, fav.DedupeKey())
	fields[fieldAnimalName] = fav.AnimalName
	fields[fieldImageURL] = fav.ImageURL

	return fields
}

func (m favoriteMapper) FromDocument(doc repository.Document) (*entity.Favorite, bool) {
	fav := m.New()

	rec, ok := recordFromDocument(doc, entity.StatusActive, fav.ValidStatus)
	if !ok {
		return nil, false
	}

	fav.Record = rec
	fav.AnimalName = stringField(doc.Fields, fieldAnimalName)
	fav.ImageURL = stringField(doc.Fields, fieldImageURL)

	return fav, true
}
