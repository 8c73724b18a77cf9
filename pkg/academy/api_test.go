package academy_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/colorbulb/nexteliteweb2/pkg/academy"
	"github.com/colorbulb/nexteliteweb2/pkg/auth"
	"github.com/colorbulb/nexteliteweb2/pkg/client"
	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore/docstoretest"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
	"github.com/colorbulb/nexteliteweb2/pkg/quiz"
	"github.com/colorbulb/nexteliteweb2/pkg/routes"
)

const (
	adminEmail    = "admin@academy.test"
	adminPassword = "correct horse"
)

type testEnv struct {
	app     *academy.App
	server  *httptest.Server
	mem     *docstore.Memory
	failing *docstoretest.Failing
}

func (e *testEnv) client() *client.Client {
	return client.NewClient(e.server.URL)
}

func (e *testEnv) admin(t *testing.T) *client.Client {
	t.Helper()
	c := e.client()
	_, err := c.SignIn(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	return c
}

// newTestEnv serves a hydrated App over a memory backend.
func newTestEnv(t *testing.T, hydrate bool) *testEnv {
	t.Helper()
	ctx := context.Background()

	hash, err := auth.HashPassword(adminPassword, bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &academy.Config{
		Backend:           academy.BackendMemory,
		AdminEmail:        adminEmail,
		AdminPasswordHash: hash,
		JWTSecret:         "test-secret",
		SessionKey:        "0123456789abcdef0123456789abcdef",
		FailurePolicy:     content.DefaultPolicy(),
	}

	mem := docstore.NewMemory(models.SequenceGenerator("remote"))
	failing := docstoretest.Wrap(mem)
	app, err := academy.NewWithBackend(ctx, cfg, failing, zerolog.Nop(),
		content.WithIDGenerator(models.SequenceGenerator("id")))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Close(context.Background())) })

	if hydrate {
		res := app.Store().Hydrate(ctx)
		require.NoError(t, res.Err)
	}

	server := httptest.NewServer(app.Handler())
	t.Cleanup(server.Close)
	return &testEnv{app: app, server: server, mem: mem, failing: failing}
}

func TestLoadingGate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	c := env.client()

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "loading", health["status"])

	_, err = c.Courses(ctx)
	assert.Equal(t, http.StatusServiceUnavailable, client.StatusCode(err))

	env.app.Store().Hydrate(ctx)
	health, err = c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health["status"])
	courses, err := c.Courses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 4)
}

func TestPublicReads(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	c := env.client()

	site, err := c.Site(ctx)
	require.NoError(t, err)
	assert.Len(t, site.Courses, 4)
	assert.Len(t, site.Posts, 3)
	assert.Len(t, site.Team, 3)
	assert.Contains(t, site.PageContent, "home")

	course, err := c.Course(ctx, "logic-101")
	require.NoError(t, err)
	require.NotNil(t, course.Preview)
	assert.Equal(t, models.PreviewQuiz, course.Preview.Body.Kind())

	_, err = c.Course(ctx, "nope")
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))

	post, err := c.Post(ctx, site.Posts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, site.Posts[0].Title, post.Title)

	page, err := c.Page(ctx, "home")
	require.NoError(t, err)
	assert.NotEmpty(t, page)
	_, err = c.Page(ctx, "nope")
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))

	route, err := c.Resolve(ctx, "/course/logic-101")
	require.NoError(t, err)
	assert.Equal(t, routes.Route{Page: routes.PageCourse, ID: "logic-101"}, route)
	_, err = c.Resolve(ctx, "/nowhere")
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))
}

func TestAuth(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	c := env.client()

	_, err := c.SignIn(ctx, adminEmail, "wrong")
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))
	assert.Contains(t, err.Error(), auth.ErrInvalidCredentials.Error())

	_, err = c.AllCourses(ctx)
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))

	sess, err := c.SignIn(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, adminEmail, me.Email)

	_, err = c.AllCourses(ctx)
	require.NoError(t, err)

	require.NoError(t, c.SignOut(ctx))
	c.SetAuthToken(sess.Token)
	_, err = c.AllCourses(ctx)
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))
}

func TestAdminCourses(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	c := env.admin(t)

	created, err := c.CreateCourse(ctx, models.Course{Title: "Rhetoric", Featured: true})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	for _, id := range []string{"logic-101", "debate-adv"} {
		course, err := c.Course(ctx, id)
		require.NoError(t, err)
		course.Featured = true
		_, err = c.UpdateCourse(ctx, course)
		require.NoError(t, err)
	}

	course, err := c.Course(ctx, "english-lit")
	require.NoError(t, err)
	course.Featured = true
	_, err = c.UpdateCourse(ctx, course)
	assert.Equal(t, http.StatusConflict, client.StatusCode(err), "fourth featured course")

	course.Disabled = true
	saved, err := c.UpdateCourse(ctx, course)
	require.NoError(t, err)
	assert.False(t, saved.Featured)

	featured, err := c.FeaturedCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 3)

	_, err = c.Course(ctx, "english-lit")
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err), "disabled courses are hidden")
	all, err := c.AllCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	_, err = c.CreateCourse(ctx, models.Course{})
	assert.Equal(t, http.StatusBadRequest, client.StatusCode(err))

	_, err = c.UpdateCourse(ctx, models.Course{ID: "ghost", Title: "Ghost"})
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))

	require.NoError(t, c.DeleteCourse(ctx, created.ID))
	_, err = c.Course(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))

	require.NoError(t, env.app.Store().Flush(ctx))
	assert.Equal(t, 4, env.mem.Len(models.CollectionCourses))
}

func TestCreateCourseRejectsUsedID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	c := env.admin(t)

	for _, id := range []string{"logic-101", "debate-adv", "english-lit"} {
		course, err := c.Course(ctx, id)
		require.NoError(t, err)
		course.Featured = true
		_, err = c.UpdateCourse(ctx, course)
		require.NoError(t, err)
	}

	_, err := c.CreateCourse(ctx, models.Course{ID: "logic-101", Title: "Copy", Featured: true})
	assert.Equal(t, http.StatusConflict, client.StatusCode(err))
	_, err = c.CreateCourse(ctx, models.Course{ID: "debate-adv", Title: "Copy"})
	assert.Equal(t, http.StatusConflict, client.StatusCode(err))

	featured, err := c.FeaturedCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 3)
	all, err := c.AllCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	course, err := c.Course(ctx, "logic-101")
	require.NoError(t, err)
	assert.NotEqual(t, "Copy", course.Title)
}

func TestNewWithBackendErrors(t *testing.T) {
	ctx := context.Background()
	for name, cfg := range map[string]*academy.Config{
		"bad admin hash": {
			AdminEmail:        adminEmail,
			AdminPasswordHash: "not-a-hash",
		},
		"bad redis url": {
			RedisURL: "not-a-url",
		},
	} {
		t.Run(name, func(t *testing.T) {
			mem := docstore.NewMemory(models.SequenceGenerator("remote"))
			app, err := academy.NewWithBackend(ctx, cfg, mem, zerolog.Nop())
			assert.Error(t, err)
			assert.Nil(t, app)
		})
	}
}

func TestCourseWriteFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	c := env.admin(t)

	env.failing.FailAll(docstoretest.OpPut, docstoretest.OpDelete)

	created, err := c.CreateCourse(ctx, models.Course{Title: "Offline"})
	assert.Equal(t, http.StatusInternalServerError, client.StatusCode(err))
	assert.Empty(t, created.ID)
	all, err := c.AllCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5, "the local add stands")

	require.NoError(t, c.DeleteCourse(ctx, "logic-101"), "course deletes swallow failures")
	_, err = c.Course(ctx, "logic-101")
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))

	env.app.SetReadOnly(true)
	env.failing.Heal()
	_, err = c.CreatePost(ctx, models.BlogPost{Title: "Read only"})
	assert.Equal(t, http.StatusServiceUnavailable, client.StatusCode(err))
}

func TestAdminContent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	c := env.admin(t)

	post, err := c.CreatePost(ctx, models.BlogPost{Title: "News"})
	require.NoError(t, err)
	assert.NotEmpty(t, post.Date)
	post.Excerpt = "updated"
	_, err = c.UpdatePost(ctx, post)
	require.NoError(t, err)
	got, err := c.Post(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Excerpt)
	require.NoError(t, c.DeletePost(ctx, post.ID))

	team, err := c.ReplaceTeam(ctx, []models.TeamMember{{Name: "Ann"}})
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.NotEmpty(t, team[0].ID)

	testimonials, err := c.ReplaceTestimonials(ctx, []models.Testimonial{{Name: "Bo", Quote: "Great"}})
	require.NoError(t, err)
	assert.Len(t, testimonials, 1)

	item, err := c.SyncSocial(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SyncedCaption, item.Caption)
	feed, err := c.SocialFeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, item.ID, feed[0].ID)
	feed, err = c.ReplaceSocialFeed(ctx, feed[:1])
	require.NoError(t, err)
	assert.Len(t, feed, 1)

	require.NoError(t, c.UpdateSettings(ctx, models.Settings{Email: "hello@academy.test"}))
	settings, err := c.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello@academy.test", settings.Email)

	field, err := c.SetPageField(ctx, "about", "story", "A long story that certainly runs past the fifty character mark.")
	require.NoError(t, err)
	assert.True(t, field.Multiline)
	page, err := c.Page(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, field.Value, page["story"])

	schema, err := c.PageSchema(ctx)
	require.NoError(t, err)
	assert.Contains(t, schema, field)

	require.NoError(t, c.UpdatePageContent(ctx, models.PageContent{"home": {"heroTitle": "Hi"}}))
	page, err = c.Page(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"heroTitle": "Hi"}, page)

	require.NoError(t, env.app.Store().Flush(ctx))
	doc, err := env.mem.Get(ctx, models.CollectionSettings, models.SingletonID)
	require.NoError(t, err)
	assert.Equal(t, "hello@academy.test", doc.Fields["email"])
}

func TestLists(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	c := env.admin(t)

	item, err := c.AddListItem(ctx, "categories", "Logic")
	require.NoError(t, err)
	items, err := c.ListItems(ctx, "categories")
	require.NoError(t, err)
	assert.Equal(t, []models.ListItem{item}, items)

	require.NoError(t, c.RemoveListItem(ctx, "categories", item.ID))
	items, err = c.ListItems(ctx, "categories")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = c.AddListItem(ctx, "widgets", "x")
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))
	_, err = c.AddListItem(ctx, "levels", "")
	assert.Equal(t, http.StatusBadRequest, client.StatusCode(err))
}

func TestLeads(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	visitor := env.client()

	_, err := visitor.SubmitLead(ctx, models.Lead{Submission: models.ContactSubmission{Name: "Ann"}})
	assert.Equal(t, http.StatusBadRequest, client.StatusCode(err))

	env.failing.FailAll(docstoretest.OpPut)
	first, err := visitor.SubmitLead(ctx, models.Lead{Submission: models.ContactSubmission{Name: "Ann", Email: "ann@x.y"}})
	require.NoError(t, err, "lead writes swallow failures")
	env.failing.Heal()
	second, err := visitor.SubmitLead(ctx, models.Lead{Submission: models.EnrollmentSubmission{StudentName: "Bo", Email: "bo@x.y", CourseID: "logic-101"}})
	require.NoError(t, err)

	leads, err := env.admin(t).Leads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, second.ID, leads[0].ID)
	assert.Equal(t, first.ID, leads[1].ID)
	assert.Equal(t, models.LeadEnrollment, leads[0].Kind())
}

func TestAnnouncementDismissal(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	admin := env.admin(t)
	visitor := env.client()

	ann, err := visitor.Announcement(ctx)
	require.NoError(t, err)
	assert.Nil(t, ann)

	a1, err := admin.CreateAnnouncement(ctx, models.Announcement{Title: "Open day"})
	require.NoError(t, err)

	ann, err = visitor.Announcement(ctx)
	require.NoError(t, err)
	require.NotNil(t, ann)
	assert.Equal(t, a1.ID, ann.ID)

	require.NoError(t, visitor.DismissAnnouncement(ctx, a1.ID))
	ann, err = visitor.Announcement(ctx)
	require.NoError(t, err)
	assert.Nil(t, ann, "dismissed")

	ann, err = env.client().Announcement(ctx)
	require.NoError(t, err)
	require.NotNil(t, ann, "other visitors still see it")

	a1.Disabled = true
	_, err = admin.UpdateAnnouncement(ctx, a1)
	require.NoError(t, err)
	a2, err := admin.CreateAnnouncement(ctx, models.Announcement{Title: "Summer camp"})
	require.NoError(t, err)

	ann, err = visitor.Announcement(ctx)
	require.NoError(t, err)
	require.NotNil(t, ann)
	assert.Equal(t, a2.ID, ann.ID)
	require.NoError(t, visitor.DismissAnnouncement(ctx, a2.ID))

	a1.Disabled = false
	_, err = admin.UpdateAnnouncement(ctx, a1)
	require.NoError(t, err)
	require.NoError(t, admin.DeleteAnnouncement(ctx, a2.ID))

	ann, err = visitor.Announcement(ctx)
	require.NoError(t, err)
	require.NotNil(t, ann, "a later dismissal replaces the earlier one")
	assert.Equal(t, a1.ID, ann.ID)

	assert.Equal(t, http.StatusNotFound, client.StatusCode(visitor.DismissAnnouncement(ctx, "ghost")))
}

func TestAnnouncementCap(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	admin := env.admin(t)

	for i := 0; i < content.MaxAnnouncements; i++ {
		_, err := admin.CreateAnnouncement(ctx, models.Announcement{Title: "a"})
		require.NoError(t, err)
	}
	_, err := admin.CreateAnnouncement(ctx, models.Announcement{Title: "one too many"})
	assert.Equal(t, http.StatusConflict, client.StatusCode(err))
}

func TestQuiz(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	visitor := env.client()

	view, err := visitor.Quiz(ctx, "logic-101")
	require.NoError(t, err)
	assert.Equal(t, 3, view.Total)
	assert.Nil(t, view.CorrectAnswer)
	assert.Equal(t, quiz.Unanswered, view.State.Answer)

	_, err = visitor.QuizCheck(ctx, "logic-101")
	assert.Equal(t, http.StatusConflict, client.StatusCode(err))

	for _, option := range []int{1, 0, 2} {
		_, err := visitor.QuizSelect(ctx, "logic-101", option)
		require.NoError(t, err)
		view, err = visitor.QuizCheck(ctx, "logic-101")
		require.NoError(t, err)
		require.NotNil(t, view.CorrectAnswer)
		view, err = visitor.QuizNext(ctx, "logic-101")
		require.NoError(t, err)
	}
	assert.True(t, view.State.Finished)
	assert.Equal(t, 2, view.State.Score)

	view, err = visitor.Quiz(ctx, "logic-101")
	require.NoError(t, err)
	assert.True(t, view.State.Finished, "progress survives between requests")

	fresh, err := env.client().Quiz(ctx, "logic-101")
	require.NoError(t, err)
	assert.False(t, fresh.State.Finished, "progress is per visitor")

	view, err = visitor.QuizRestart(ctx, "logic-101")
	require.NoError(t, err)
	assert.Equal(t, quiz.State{Answer: quiz.Unanswered}, view.State)

	_, err = visitor.Quiz(ctx, "debate-adv")
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err), "video preview has no quiz")
}

func TestEmptyQuizCanBeSaved(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	admin := env.admin(t)

	course, err := admin.Course(ctx, "logic-101")
	require.NoError(t, err)
	course.Preview = &models.Preview{Title: "Coming soon", Body: models.QuizPreview{}}
	_, err = admin.UpdateCourse(ctx, course)
	require.NoError(t, err)

	_, err = env.client().Quiz(ctx, "logic-101")
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	export, err := env.admin(t).Export(ctx)
	require.NoError(t, err)
	assert.Len(t, export.Courses, 4)
	assert.False(t, export.Timestamp.IsZero())

	resp, err := http.Get(env.server.URL + "/api/admin/export")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
