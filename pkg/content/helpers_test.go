package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore/docstoretest"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

var testNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// newStore builds a Store over a fresh memory backend wrapped for fault injection.
func newStore(t *testing.T, opts ...content.Option) (*content.Store, *docstore.Memory, *docstoretest.Failing) {
	t.Helper()
	mem := docstore.NewMemory(models.SequenceGenerator("remote"))
	store, failing := storeOn(t, mem, opts...)
	return store, mem, failing
}

// storeOn builds a Store over an existing backend, as a fresh process start would.
func storeOn(t *testing.T, backend docstore.Backend, opts ...content.Option) (*content.Store, *docstoretest.Failing) {
	t.Helper()
	failing := docstoretest.Wrap(backend)
	client := docstore.NewClient(failing, zerolog.Nop())
	base := []content.Option{
		content.WithIDGenerator(models.SequenceGenerator("id")),
		content.WithClock(fixedClock),
	}
	store := content.New(client, append(base, opts...)...)
	t.Cleanup(func() {
		require.NoError(t, store.Close(context.Background()))
	})
	return store, failing
}

func courseIDs(courses []models.Course) []string {
	ids := make([]string, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	return ids
}
