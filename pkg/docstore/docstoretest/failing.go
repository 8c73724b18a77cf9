// Package docstoretest provides backends for exercising failure paths.
package docstoretest

import (
	"context"
	"errors"
	"sync"

	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("injected failure")

type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpPut    Op = "put"
	OpCreate Op = "create"
	OpDelete Op = "delete"
)

// Call records one backend operation.
type Call struct {
	Op         Op
	Collection models.Collection
	ID         string
}

// Failing wraps a backend, records every call and fails the configured ones.
type Failing struct {
	docstore.Backend

	mu        sync.Mutex
	calls     []Call
	failAll   map[Op]bool
	failColl  map[Op]map[models.Collection]bool
	failAfter map[Op]int
}

func Wrap(backend docstore.Backend) *Failing {
	return &Failing{
		Backend:   backend,
		failAll:   make(map[Op]bool),
		failColl:  make(map[Op]map[models.Collection]bool),
		failAfter: make(map[Op]int),
	}
}

// FailAll makes every listed operation fail on every collection.
func (f *Failing) FailAll(ops ...Op) *Failing {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, op := range ops {
		f.failAll[op] = true
	}
	return f
}

// Fail makes op fail on coll.
func (f *Failing) Fail(op Op, coll models.Collection) *Failing {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failColl[op] == nil {
		f.failColl[op] = make(map[models.Collection]bool)
	}
	f.failColl[op][coll] = true
	return f
}

// FailAfter lets n calls of op succeed and fails the rest.
func (f *Failing) FailAfter(op Op, n int) *Failing {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAfter[op] = n + 1
	return f
}

// Heal clears every configured failure.
func (f *Failing) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAll = make(map[Op]bool)
	f.failColl = make(map[Op]map[models.Collection]bool)
	f.failAfter = make(map[Op]int)
}

// Calls returns the recorded operations.
func (f *Failing) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many times op was called on coll.
func (f *Failing) Count(op Op, coll models.Collection) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Op == op && c.Collection == coll {
			n++
		}
	}
	return n
}

func (f *Failing) check(op Op, coll models.Collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: op, Collection: coll, ID: id})
	if f.failAll[op] || f.failColl[op][coll] {
		return ErrInjected
	}
	if n, ok := f.failAfter[op]; ok {
		if n <= 1 {
			return ErrInjected
		}
		f.failAfter[op] = n - 1
	}
	return nil
}

func (f *Failing) List(ctx context.Context, coll models.Collection) ([]docstore.Document, error) {
	if err := f.check(OpList, coll, ""); err != nil {
		return nil, err
	}
	return f.Backend.List(ctx, coll)
}

func (f *Failing) Get(ctx context.Context, coll models.Collection, id string) (docstore.Document, error) {
	if err := f.check(OpGet, coll, id); err != nil {
		return docstore.Document{}, err
	}
	return f.Backend.Get(ctx, coll, id)
}

func (f *Failing) Put(ctx context.Context, coll models.Collection, id string, fields map[string]any) error {
	if err := f.check(OpPut, coll, id); err != nil {
		return err
	}
	return f.Backend.Put(ctx, coll, id, fields)
}

func (f *Failing) Create(ctx context.Context, coll models.Collection, fields map[string]any) (string, error) {
	if err := f.check(OpCreate, coll, ""); err != nil {
		return "", err
	}
	return f.Backend.Create(ctx, coll, fields)
}

func (f *Failing) Delete(ctx context.Context, coll models.Collection, id string) error {
	if err := f.check(OpDelete, coll, id); err != nil {
		return err
	}
	return f.Backend.Delete(ctx, coll, id)
}
