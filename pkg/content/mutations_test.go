package content_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore/docstoretest"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
	"github.com/colorbulb/nexteliteweb2/pkg/seeddata"
)

func TestAddCourseIsAppliedLocallyRegardlessOfRemote(t *testing.T) {
	ctx := context.Background()

	t.Run("remote success", func(t *testing.T) {
		store, mem, _ := newStore(t)
		before := store.Courses()

		added, err := store.AddCourse(ctx, models.Course{Title: "Rhetoric"})
		require.NoError(t, err)
		assert.Equal(t, "id-1", added.ID)

		after := store.Courses()
		require.Len(t, after, len(before)+1)
		assert.Equal(t, added, after[len(after)-1])
		assert.Equal(t, 1, mem.Len(models.CollectionCourses))
	})

	t.Run("remote failure surfaces but is not rolled back", func(t *testing.T) {
		store, mem, failing := newStore(t)
		failing.FailAll(docstoretest.OpPut)
		before := store.Courses()

		added, err := store.AddCourse(ctx, models.Course{Title: "Rhetoric"})
		assert.ErrorIs(t, err, docstoretest.ErrInjected)

		after := store.Courses()
		require.Len(t, after, len(before)+1)
		assert.Equal(t, models.Course{ID: "id-1", Title: "Rhetoric"}, after[len(after)-1])
		assert.Equal(t, added, after[len(after)-1])
		assert.Zero(t, mem.Len(models.CollectionCourses))
	})

	t.Run("keeps caller supplied id", func(t *testing.T) {
		store, _, _ := newStore(t)
		added, err := store.AddCourse(ctx, models.Course{ID: "mine", Title: "Mine"})
		require.NoError(t, err)
		assert.Equal(t, "mine", added.ID)
	})

	t.Run("rejects an id in use", func(t *testing.T) {
		store, _, failing := newStore(t)
		before := store.Courses()

		_, err := store.AddCourse(ctx, models.Course{ID: "logic-101", Title: "Copy", Featured: true})
		assert.ErrorIs(t, err, content.ErrDuplicateID)
		assert.Equal(t, before, store.Courses())
		assert.Zero(t, failing.Count(docstoretest.OpPut, models.CollectionCourses))
	})
}

func TestAddRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newStore(t)

	post, err := store.AddPost(ctx, models.BlogPost{Title: "News"})
	require.NoError(t, err)
	_, err = store.AddPost(ctx, models.BlogPost{ID: post.ID, Title: "Again"})
	assert.ErrorIs(t, err, content.ErrDuplicateID)
	assert.Len(t, store.Posts(), len(seeddata.Default().BlogPosts)+1)

	ann, err := store.AddAnnouncement(ctx, models.Announcement{Title: "Open day"})
	require.NoError(t, err)
	_, err = store.AddAnnouncement(ctx, ann)
	assert.ErrorIs(t, err, content.ErrDuplicateID)
	assert.Len(t, store.Announcements(), 1)
}

func TestRemoveIsLocallyFinal(t *testing.T) {
	ctx := context.Background()
	store, _, failing := newStore(t)
	failing.FailAll(docstoretest.OpDelete)

	require.NoError(t, store.RemoveCourse(ctx, "logic-101"))
	require.NoError(t, store.RemovePost(ctx, "1"))
	require.NoError(t, store.Flush(ctx))

	_, ok := store.Course("logic-101")
	assert.False(t, ok)
	_, ok = store.Post("1")
	assert.False(t, ok)
	assert.Equal(t, 1, failing.Count(docstoretest.OpDelete, models.CollectionCourses))

	_, err := store.AddCourse(ctx, models.Course{Title: "Other"})
	require.NoError(t, err)
	require.NoError(t, store.UpdateCourse(ctx, models.Course{ID: "debate-adv", Title: "Debate"}))
	assert.NotContains(t, courseIDs(store.Courses()), "logic-101")
}

func TestReplaceCollectionFailureKeepsLocalList(t *testing.T) {
	ctx := context.Background()
	store, _, failing := newStore(t)
	failing.FailAfter(docstoretest.OpPut, 1)

	team := []models.TeamMember{
		{ID: "a", Name: "Ada"},
		{ID: "b", Name: "Ben"},
		{Name: "Cy"},
	}
	require.NoError(t, store.ReplaceTeam(ctx, team))
	require.NoError(t, store.Flush(ctx))

	got := store.Team()
	require.Len(t, got, 3)
	assert.Equal(t, "Ada", got[0].Name)
	assert.Equal(t, "id-1", got[2].ID)
	assert.Equal(t, 2, failing.Count(docstoretest.OpPut, models.CollectionTeam))
}

func TestReplaceWholeCollections(t *testing.T) {
	ctx := context.Background()
	store, mem, _ := newStore(t)

	require.NoError(t, store.ReplaceTestimonials(ctx, []models.Testimonial{{ID: "t1", Quote: "Great"}}))
	require.NoError(t, store.ReplaceSocialFeed(ctx, []models.SocialFeedItem{{ID: "s1", Platform: models.PlatformFacebook}}))
	require.NoError(t, store.Flush(ctx))

	assert.Equal(t, 1, mem.Len(models.CollectionTestimonials))
	assert.Equal(t, 1, mem.Len(models.CollectionSocialFeed))
	assert.Len(t, store.Testimonials(), 1)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store, mem, _ := newStore(t)

	course, ok := store.Course("english-lit")
	require.True(t, ok)
	course.Title = "English"
	require.NoError(t, store.UpdateCourse(ctx, course))

	got, _ := store.Course("english-lit")
	assert.Equal(t, "English", got.Title)
	doc, err := mem.Get(ctx, models.CollectionCourses, "english-lit")
	require.NoError(t, err)
	assert.Equal(t, "English", doc.Fields["title"])

	assert.ErrorIs(t, store.UpdateCourse(ctx, models.Course{ID: "nope"}), content.ErrNotFound)
	assert.ErrorIs(t, store.UpdateCourse(ctx, models.Course{}), content.ErrMissingID)
	assert.ErrorIs(t, store.UpdatePost(ctx, models.BlogPost{ID: "nope"}), content.ErrNotFound)
	assert.Zero(t, mem.Len(models.CollectionBlogPosts))
}

func TestAddPostDefaultsDate(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newStore(t)

	post, err := store.AddPost(ctx, models.BlogPost{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "March 5, 2024", post.Date)
	assert.Equal(t, "id-1", post.ID)

	dated, err := store.AddPost(ctx, models.BlogPost{Title: "Old", Date: "May 1, 2020"})
	require.NoError(t, err)
	assert.Equal(t, "May 1, 2020", dated.Date)
}

func TestAddLeadSwallowsFailure(t *testing.T) {
	ctx := context.Background()
	store, _, failing := newStore(t)
	failing.FailAll(docstoretest.OpPut)

	first, err := store.AddLead(ctx, models.Lead{Submission: models.ContactSubmission{Name: "A", Email: "a@x.y"}})
	require.NoError(t, err)
	assert.Equal(t, testNow, first.CreatedAt)

	second, err := store.AddLead(ctx, models.Lead{Submission: models.ContactSubmission{Name: "B", Email: "b@x.y"}})
	require.NoError(t, err)
	require.NoError(t, store.Flush(ctx))

	leads := store.Leads()
	require.Len(t, leads, 2)
	assert.Equal(t, second.ID, leads[0].ID)
	assert.Equal(t, first.ID, leads[1].ID)
}

func TestAddLeadKeepsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newStore(t)

	at := func(day int) time.Time { return time.Date(2024, time.March, day, 9, 0, 0, 0, time.UTC) }
	for _, day := range []int{3, 1, 4, 2} {
		_, err := store.AddLead(ctx, models.Lead{
			ID:         fmt.Sprintf("lead-%d", day),
			CreatedAt:  at(day),
			Submission: models.ContactSubmission{Name: "A", Email: "a@x.y"},
		})
		require.NoError(t, err)
	}

	var ids []string
	for _, l := range store.Leads() {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"lead-4", "lead-3", "lead-2", "lead-1"}, ids)
}

func TestAnnouncements(t *testing.T) {
	ctx := context.Background()
	store, _, failing := newStore(t)

	a, err := store.AddAnnouncement(ctx, models.Announcement{Title: "Open day"})
	require.NoError(t, err)
	a.Disabled = true
	require.NoError(t, store.UpdateAnnouncement(ctx, a))
	got, ok := store.Announcement(a.ID)
	require.True(t, ok)
	assert.True(t, got.Disabled)

	failing.FailAll(docstoretest.OpDelete)
	assert.ErrorIs(t, store.RemoveAnnouncement(ctx, a.ID), docstoretest.ErrInjected)
	assert.Empty(t, store.Announcements())
}

func TestPolicyIsConfigurable(t *testing.T) {
	ctx := context.Background()
	policy := content.DefaultPolicy().
		Set(models.CollectionCourses, content.OpRemove, content.Propagate).
		Set(models.CollectionCourses, content.OpAdd, content.Swallow)
	store, _, failing := newStore(t, content.WithPolicy(policy))
	failing.FailAll(docstoretest.OpDelete, docstoretest.OpPut)

	err := store.RemoveCourse(ctx, "logic-101")
	assert.ErrorIs(t, err, docstoretest.ErrInjected)
	_, ok := store.Course("logic-101")
	assert.False(t, ok)

	_, err = store.AddCourse(ctx, models.Course{Title: "Quiet"})
	assert.NoError(t, err)
}

func TestSingletonUpdatesAreOrdered(t *testing.T) {
	ctx := context.Background()
	store, mem, _ := newStore(t)

	for i := 0; i < 20; i++ {
		require.NoError(t, store.SetPageField(ctx, "home", "heroTitle", fmt.Sprintf("title %d", i)))
	}
	require.NoError(t, store.UpdateSettings(ctx, models.Settings{Phone: "1"}))
	require.NoError(t, store.UpdateSettings(ctx, models.Settings{Phone: "2"}))
	require.NoError(t, store.Flush(ctx))

	assert.Equal(t, "title 19", store.PageContent()["home"]["heroTitle"])
	doc, err := mem.Get(ctx, models.CollectionPageContent, models.SingletonID)
	require.NoError(t, err)
	home := doc.Fields["home"].(map[string]any)
	assert.Equal(t, "title 19", home["heroTitle"])
	assert.Contains(t, home, "heroSubtitle")

	settings, err := mem.Get(ctx, models.CollectionSettings, models.SingletonID)
	require.NoError(t, err)
	assert.Equal(t, "2", settings.Fields["phone"])
}

func TestSingletonFailureIsNotSurfaced(t *testing.T) {
	ctx := context.Background()
	store, _, failing := newStore(t)
	failing.FailAll(docstoretest.OpPut)

	require.NoError(t, store.UpdatePageContent(ctx, models.PageContent{"about": {"title": "About"}}))
	require.NoError(t, store.Flush(ctx))
	assert.Equal(t, models.PageContent{"about": {"title": "About"}}, store.PageContent())
}

func TestSyncSocial(t *testing.T) {
	ctx := context.Background()
	store, mem, _ := newStore(t)

	item, err := store.SyncSocial(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Flush(ctx))

	feed := store.SocialFeed()
	require.Len(t, feed, 5)
	assert.Equal(t, item, feed[0])
	assert.Equal(t, content.SyncedCaption, item.Caption)
	assert.Equal(t, models.PlatformInstagram, item.Platform)
	assert.Zero(t, item.Likes)
	assert.Equal(t, 5, mem.Len(models.CollectionSocialFeed))
}

func TestLists(t *testing.T) {
	ctx := context.Background()
	store, mem, _ := newStore(t)

	item, err := store.AddListItem(ctx, models.CollectionLevels, "High School")
	require.NoError(t, err)
	levels, err := store.List(models.CollectionLevels)
	require.NoError(t, err)
	assert.Equal(t, []models.ListItem{item}, levels)
	assert.Equal(t, 1, mem.Len(models.CollectionLevels))

	require.NoError(t, store.RemoveListItem(ctx, models.CollectionLevels, item.ID))
	levels, _ = store.List(models.CollectionLevels)
	assert.Empty(t, levels)

	_, err = store.AddListItem(ctx, models.CollectionCourses, "x")
	assert.ErrorIs(t, err, content.ErrUnknownList)
	_, err = store.List(models.CollectionTeam)
	assert.ErrorIs(t, err, content.ErrUnknownList)
}

func TestReadsReturnCopies(t *testing.T) {
	store, _, _ := newStore(t)

	course, _ := store.Course("logic-101")
	course.Syllabus[0] = "changed"
	course.Preview.Questions()[0].Options[0] = "changed"

	again, _ := store.Course("logic-101")
	assert.NotEqual(t, "changed", again.Syllabus[0])
	assert.NotEqual(t, "changed", again.Preview.Questions()[0].Options[0])

	pc := store.PageContent()
	pc["home"]["heroTitle"] = "changed"
	assert.NotEqual(t, "changed", store.PageContent()["home"]["heroTitle"])
}

func TestPublicAndFeaturedCourses(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newStore(t)

	course, _ := store.Course("logic-101")
	course.Featured = true
	require.NoError(t, store.UpdateCourse(ctx, course))
	course, _ = store.Course("ai-intro")
	course.Disabled = true
	course.Featured = true
	require.NoError(t, store.UpdateCourse(ctx, course))

	assert.NotContains(t, courseIDs(store.PublicCourses()), "ai-intro")
	assert.Equal(t, []string{"logic-101"}, courseIDs(store.FeaturedCourses()))
}

func TestMutationsAfterClose(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newStore(t)
	require.NoError(t, store.Close(ctx))

	_, err := store.AddCourse(ctx, models.Course{Title: "Late"})
	assert.ErrorIs(t, err, content.ErrClosed)
	assert.NoError(t, store.RemoveCourse(ctx, "logic-101"))
	_, ok := store.Course("logic-101")
	assert.False(t, ok)
}
