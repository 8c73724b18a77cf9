package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore/sqlstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

func openSQLite(t *testing.T) *sqlstore.Store {
	t.Helper()
	store, err := sqlstore.Open(sqlstore.Config{
		Driver: sqlstore.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "academy.db"),
	})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := openSQLite(t)

	require.NoError(t, store.Put(ctx, models.CollectionTeam, "2", map[string]any{"name": "Bo", "id": "ignored"}))
	require.NoError(t, store.Put(ctx, models.CollectionTeam, "1", map[string]any{"name": "Ann"}))
	id, err := store.Create(ctx, models.CollectionTestimonials, map[string]any{"quote": "great"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	docs, err := store.List(ctx, models.CollectionTeam)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "1", docs[0].ID)
	assert.Equal(t, "Bo", docs[1].Fields["name"])
	assert.NotContains(t, docs[1].Fields, "id")

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, models.CollectionTeam, "1", map[string]any{"name": "Anne"}))
		doc, err := store.Get(ctx, models.CollectionTeam, "1")
		require.NoError(t, err)
		assert.Equal(t, "Anne", doc.Fields["name"])
	})

	t.Run("collections are isolated", func(t *testing.T) {
		docs, err := store.List(ctx, models.CollectionTestimonials)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, id, docs[0].ID)
	})

	t.Run("delete then get", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, models.CollectionTeam, "1"))
		_, err := store.Get(ctx, models.CollectionTeam, "1")
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})
}

func TestStoreWithClient(t *testing.T) {
	ctx := context.Background()
	client := docstore.NewClient(openSQLite(t), zerolog.Nop())

	course := models.Course{
		ID:    "logic-101",
		Title: "Foundations of Logic",
		Preview: &models.Preview{Title: "Quiz", Body: models.QuizPreview{Questions: []models.QuizQuestion{
			{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 1},
		}}},
		Featured: true,
	}
	_, err := docstore.Put(ctx, client, models.CollectionCourses, course)
	require.NoError(t, err)

	got := docstore.List[models.Course](ctx, client, models.CollectionCourses)
	require.Len(t, got, 1)
	assert.Equal(t, course, got[0])

	require.NoError(t, docstore.SetValue(ctx, client, models.CollectionSettings, models.Settings{Phone: "1"}))
	settings, ok := docstore.Singleton[models.Settings](ctx, client, models.CollectionSettings)
	require.True(t, ok)
	assert.Equal(t, "1", settings.Phone)
}
