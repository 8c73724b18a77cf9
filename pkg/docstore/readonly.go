package docstore

import (
	"context"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// ReadOnly wraps a Backend and rejects writes while isReadOnly reports true.
//
// It is used for maintenance windows, for example while content is being
// mirrored to another backend, so that admin edits cannot race the copy.
// Reads always pass through. The flag is evaluated on every call, so the
// server can enter and leave read-only mode without rebuilding the store.
type ReadOnly struct {
	Backend
	isReadOnly func() bool
}

func NewReadOnly(backend Backend, isReadOnly func() bool) *ReadOnly {
	return &ReadOnly{
		Backend:    backend,
		isReadOnly: isReadOnly,
	}
}

// Unwrap returns the underlying backend
func (r *ReadOnly) Unwrap() Backend {
	return r.Backend
}

func (r *ReadOnly) checkReadOnly() error {
	if r.isReadOnly() {
		return ErrReadOnly
	}
	return nil
}

func (r *ReadOnly) Put(ctx context.Context, coll models.Collection, id string, fields map[string]any) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Backend.Put(ctx, coll, id, fields)
}

func (r *ReadOnly) Create(ctx context.Context, coll models.Collection, fields map[string]any) (string, error) {
	if err := r.checkReadOnly(); err != nil {
		return "", err
	}
	return r.Backend.Create(ctx, coll, fields)
}

func (r *ReadOnly) Delete(ctx context.Context, coll models.Collection, id string) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Backend.Delete(ctx, coll, id)
}
