package repository

import (
	"context"

	"github.com/pkg/errors"
)

// Domain-specific errors for the remote document store.
var (
	// ErrRemoteUnavailable is returned when the remote store cannot be reached.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	// ErrRemoteDocumentNotFound is returned when a document does not exist remotely.
	ErrRemoteDocumentNotFound = errors.New("remote document not found")
)

// Document fields the sync pipeline queries on.
const (
	// FieldClientID carries the local ID of the record that created the document.
	FieldClientID = "clientId"
	// FieldOwnerUserID carries the owning user.
	FieldOwnerUserID = "ownerUserId"
	// FieldDedupeKey carries the uniqueness key while the record must be unique.
	FieldDedupeKey = "dedupeKey"
)

// Document is a remote document: a server assigned ID and scalar fields keyed by name.
type Document struct {
	ID     string
	Fields map[string]any
}

// FilterOp is a query comparison operator.
type FilterOp string

const (
	OpEqual          FilterOp = "=="
	OpGreaterOrEqual FilterOp = ">="
	OpLessOrEqual    FilterOp = "<="
)

// Filter restricts a query on one field.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Eq builds an equality filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

// OrderBy sorts query results on one field.
type OrderBy struct {
	Field      string
	Descending bool
}

// RemoteStore is a collection-oriented cloud document database.
type RemoteStore interface {
	// Add creates a document with a server generated ID.
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)

	// AddUnique creates a document unless another document in the collection already holds
	// dedupeKey, in which case it returns that document's ID and created=false.
	AddUnique(ctx context.Context, collection string, fields map[string]any, dedupeKey string) (id string, created bool, err error)

	// Query returns the documents matching every filter.
	Query(ctx context.Context, collection string, filters []Filter, order *OrderBy) ([]Document, error)

	// Update merges fields into an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
}
