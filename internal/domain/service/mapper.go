package service

import (
	"pawsync/internal/domain/entity"
	"pawsync/internal/domain/repository"
)

// Mapper converts between remote documents and entities.
//
// FromDocument never fails loudly: missing or mistyped optional fields get defaults, and a
// document that cannot produce a valid identity returns ok=false so the caller can drop it.
// Mapping is pure and idempotent.
type Mapper[T entity.Syncable] interface {
	// ToDocument builds the remote fields for an entity.
	ToDocument(rec T) map[string]any

	// FromDocument builds an entity from a remote document.
	FromDocument(doc repository.Document) (rec T, ok bool)

	// New returns an empty entity of the mapped kind.
	New() T
}
