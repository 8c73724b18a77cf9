package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// Memory is an in-process Backend. Documents are deep-copied on the way in
// and out.
type Memory struct {
	mu    sync.RWMutex
	colls map[models.Collection]map[string]map[string]any
	newID models.IDGenerator
}

func NewMemory(newID models.IDGenerator) *Memory {
	if newID == nil {
		newID = models.UUIDGenerator
	}
	return &Memory{
		colls: make(map[models.Collection]map[string]map[string]any),
		newID: newID,
	}
}

func (m *Memory) List(ctx context.Context, coll models.Collection) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]Document, 0, len(m.colls[coll]))
	for id, fields := range m.colls[coll] {
		docs = append(docs, Document{ID: id, Fields: copyMap(fields)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (m *Memory) Get(ctx context.Context, coll models.Collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields, ok := m.colls[coll][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Fields: copyMap(fields)}, nil
}

func (m *Memory) Put(ctx context.Context, coll models.Collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(coll, id, fields)
	return nil
}

func (m *Memory) Create(ctx context.Context, coll models.Collection, fields map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.newID()
	m.put(coll, id, fields)
	return id, nil
}

func (m *Memory) Delete(ctx context.Context, coll models.Collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.colls[coll], id)
	return nil
}

func (m *Memory) Close(ctx context.Context) error {
	return nil
}

// Len returns the number of documents in coll.
func (m *Memory) Len(coll models.Collection) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.colls[coll])
}

func (m *Memory) put(coll models.Collection, id string, fields map[string]any) {
	docs, ok := m.colls[coll]
	if !ok {
		docs = make(map[string]map[string]any)
		m.colls[coll] = docs
	}
	copied := copyMap(fields)
	delete(copied, idField)
	docs[id] = copied
}

func copyMap(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return copyMap(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
