package docstoretest

import (
	"context"
	"sync"

	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// Blocking wraps a backend whose writes can be held, standing in for a store
// that stops answering. Reads always pass through.
type Blocking struct {
	docstore.Backend

	mu   sync.Mutex
	gate chan struct{}
}

func NewBlocking(backend docstore.Backend) *Blocking {
	return &Blocking{Backend: backend}
}

// Hold makes writes wait until Release.
func (b *Blocking) Hold() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gate == nil {
		b.gate = make(chan struct{})
	}
}

// Release lets held and future writes through. It is safe to call repeatedly.
func (b *Blocking) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gate != nil {
		close(b.gate)
		b.gate = nil
	}
}

func (b *Blocking) wait(ctx context.Context) error {
	b.mu.Lock()
	gate := b.gate
	b.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Blocking) Put(ctx context.Context, coll models.Collection, id string, fields map[string]any) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	return b.Backend.Put(ctx, coll, id, fields)
}

func (b *Blocking) Create(ctx context.Context, coll models.Collection, fields map[string]any) (string, error) {
	if err := b.wait(ctx); err != nil {
		return "", err
	}
	return b.Backend.Create(ctx, coll, fields)
}

func (b *Blocking) Delete(ctx context.Context, coll models.Collection, id string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	return b.Backend.Delete(ctx, coll, id)
}
