// Package memory implements an in-process remote document store for development and tests.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"pawsync/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store keeps collections of documents in memory. It can be switched offline
// to simulate an unreachable backend.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
	order       map[string][]string
	offline     bool
	failures    map[string]error
}

// NewStore creates an empty, online store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]any),
		order:       make(map[string][]string),
		failures:    make(map[string]error),
	}
}

// SetOffline makes every operation fail with repository.ErrRemoteUnavailable while true.
func (s *Store) SetOffline(offline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offline = offline
}

// FailNext makes the next call of op ("add", "query", "update" or "delete") return err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[op] = err
}

// Put stores a document under a fixed ID, replacing any previous version.
func (s *Store) Put(collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(collection, id, fields)
}

// Count returns the number of documents in a collection.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.collections[collection])
}

// Get returns a copy of a document.
func (s *Store) Get(collection, id string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, false
	}

	return maps.Clone(doc), true
}

// Add creates a document with a generated ID.
func (s *Store) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(ctx, "add"); err != nil {
		return "", err
	}

	id := uuid.NewString()
	s.put(collection, id, fields)

	return id, nil
}

// AddUnique creates a document unless another document already holds dedupeKey.
func (s *Store) AddUnique(ctx context.Context, collection string, fields map[string]any, dedupeKey string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(ctx, "add"); err != nil {
		return "", false, err
	}

	for _, id := range s.order[collection] {
		if s.collections[collection][id][repository.FieldDedupeKey] == dedupeKey {
			return id, false, nil
		}
	}

	id := uuid.NewString()
	s.put(collection, id, fields)

	return id, true, nil
}

// Query returns the documents matching every filter, in insertion order unless ordered.
func (s *Store) Query(ctx context.Context, collection string, filters []repository.Filter, order *repository.OrderBy) ([]repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(ctx, "query"); err != nil {
		return nil, err
	}

	var docs []repository.Document
	for _, id := range s.order[collection] {
		fields := s.collections[collection][id]
		if !matchesAll(fields, filters) {
			continue
		}
		docs = append(docs, repository.Document{ID: id, Fields: maps.Clone(fields)})
	}

	if order != nil {
		slices.SortStableFunc(docs, func(a, b repository.Document) int {
			c := compareValues(a.Fields[order.Field], b.Fields[order.Field])
			if order.Descending {
				return -c
			}

			return c
		})
	}

	return docs, nil
}

// Update merges fields into an existing document.
func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(ctx, "update"); err != nil {
		return err
	}

	doc, ok := s.collections[collection][id]
	if !ok {
		return errors.Wrapf(repository.ErrRemoteDocumentNotFound, "%s/%s", collection, id)
	}
	maps.Copy(doc, fields)

	return nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(ctx, "delete"); err != nil {
		return err
	}

	if _, ok := s.collections[collection][id]; !ok {
		return nil
	}
	delete(s.collections[collection], id)
	s.order[collection] = slices.DeleteFunc(s.order[collection], func(existing string) bool {
		return existing == id
	})

	return nil
}

func (s *Store) put(collection, id string, fields map[string]any) {
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]any)
	}
	if _, exists := s.collections[collection][id]; !exists {
		s.order[collection] = append(s.order[collection], id)
	}
	s.collections[collection][id] = maps.Clone(fields)
}

// check consumes a queued failure for op. It must be called with the write lock held.
func (s *Store) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(repository.ErrRemoteUnavailable, err.Error())
	}
	if s.offline {
		return repository.ErrRemoteUnavailable
	}
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)

		return err
	}

	return nil
}

func matchesAll(fields map[string]any, filters []repository.Filter) bool {
	for _, f := range filters {
		value, ok := fields[f.Field]
		if !ok {
			return false
		}

		c := compareValues(value, f.Value)
		switch f.Op {
		case repository.OpEqual:
			if c != 0 {
				return false
			}
		case repository.OpGreaterOrEqual:
			if c < 0 {
				return false
			}
		case repository.OpLessOrEqual:
			if c > 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// compareValues orders the scalar types a document may hold. Mismatched types compare unequal.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	default:
		if af, ok := toFloat(a); ok {
			if bf, ok := toFloat(b); ok {
				return cmp.Compare(af, bf)
			}
		}
	}

	if c := cmp.Compare(typeRank(a), typeRank(b)); c != 0 {
		return c
	}

	return 1
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int, int32, int64, float32, float64:
		return 2
	case time.Time:
		return 3
	case string:
		return 4
	default:
		return 5
	}
}
