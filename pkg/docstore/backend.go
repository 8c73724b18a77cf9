package docstore

import (
	"context"
	"errors"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrReadOnly = errors.New("operation denied: store is in read-only mode")
)

// Document is a stored record. Fields never contains the "id" key.
type Document struct {
	ID     string
	Fields map[string]any
}

// Backend is a document database holding named collections.
type Backend interface {
	// List returns every document in the collection ordered by id.
	List(ctx context.Context, coll models.Collection) ([]Document, error)
	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, coll models.Collection, id string) (Document, error)
	// Put creates or replaces the document at id.
	Put(ctx context.Context, coll models.Collection, id string, fields map[string]any) error
	// Create stores the document under a new backend-assigned id.
	Create(ctx context.Context, coll models.Collection, fields map[string]any) (string, error)
	Delete(ctx context.Context, coll models.Collection, id string) error
	Close(ctx context.Context) error
}
