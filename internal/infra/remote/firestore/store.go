// Package firestore implements the remote document store on Cloud Firestore through the Firebase Admin SDK.
package firestore

import (
	"context"

	"pawsync/internal/domain/repository"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore initializes a Firebase app and returns a Firestore backed remote store.
// An empty credentialsPath falls back to application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsPath string) (repository.RemoteStore, func() error, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	var appCfg *firebase.Config
	if projectID != "" {
		appCfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get Firestore client")
	}

	return &firestoreStore{client: client}, client.Close, nil
}

// Add creates a document with a server generated ID.
func (s *firestoreStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", classify(err, "failed to add document")
	}

	return ref.ID, nil
}

// AddUnique creates a document inside a transaction unless the dedupe key is already taken.
func (s *firestoreStore) AddUnique(ctx context.Context, collection string, fields map[string]any, dedupeKey string) (string, bool, error) {
	coll := s.client.Collection(collection)

	var (
		id      string
		created bool
	)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// The function may run more than once.
		id, created = "", false

		docs, err := tx.Documents(coll.Where(repository.FieldDedupeKey, "==", dedupeKey).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(docs) > 0 {
			id = docs[0].Ref.ID

			return nil
		}

		ref := coll.NewDoc()
		if err := tx.Create(ref, fields); err != nil {
			return err
		}
		id, created = ref.ID, true

		return nil
	})
	if err != nil {
		return "", false, classify(err, "failed to add unique document")
	}

	return id, created, nil
}

// Query returns the documents matching every filter.
func (s *firestoreStore) Query(ctx context.Context, collection string, filters []repository.Filter, order *repository.OrderBy) ([]repository.Document, error) {
	query := s.client.Collection(collection).Query
	for _, f := range filters {
		query = query.Where(f.Field, string(f.Op), f.Value)
	}
	if order != nil {
		direction := firestore.Asc
		if order.Descending {
			direction = firestore.Desc
		}
		query = query.OrderBy(order.Field, direction)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []repository.Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify(err, "failed to query documents")
		}

		docs = append(docs, repository.Document{
			ID:     snap.Ref.ID,
			Fields: snap.Data(),
		})
	}

	return docs, nil
}

// Update merges fields into an existing document.
func (s *firestoreStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return classify(err, "failed to update document")
	}

	return nil
}

// Delete removes a document. Firestore treats deleting a missing document as success.
func (s *firestoreStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return classify(err, "failed to delete document")
	}

	return nil
}

// classify maps gRPC status codes onto the remote store errors.
func classify(err error, msg string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(repository.ErrRemoteUnavailable, msg)
	}

	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return errors.Wrapf(repository.ErrRemoteUnavailable, "%s: %v", msg, err)
	case codes.NotFound:
		return errors.Wrapf(repository.ErrRemoteDocumentNotFound, "%s: %v", msg, err)
	default:
		return errors.Wrap(err, msg)
	}
}
