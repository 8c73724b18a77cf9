package academy

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Handler returns the HTTP API.
//
// Public:
//
//	GET    /api/health                            - liveness and hydration status
//	GET    /api/site                              - every public read model at once
//	GET    /api/courses                           - enabled courses (?featured=true for the home page)
//	GET    /api/courses/{id}                      - one enabled course
//	GET    /api/courses/{id}/quiz                 - visitor's progress in the course preview quiz
//	POST   /api/courses/{id}/quiz/{action}        - select, check, next or restart
//	GET    /api/posts                             - blog posts
//	GET    /api/posts/{id}                        - one blog post
//	GET    /api/team                              - team members
//	GET    /api/testimonials                      - testimonials
//	GET    /api/social                            - social feed
//	GET    /api/settings                          - contact details and social links
//	GET    /api/pages/{page}                      - editable text of one page
//	GET    /api/announcement                      - announcement to show this visitor, if any
//	POST   /api/announcement/{id}/dismiss         - remember the visitor dismissed it
//	POST   /api/leads                             - contact or enrollment submission
//	GET    /api/resolve?path=/course/x            - page and entity id of a site path
//
// Authentication:
//
//	POST   /api/auth/signin                       - exchange email and password for a token
//	POST   /api/auth/signout                      - revoke the bearer token
//	GET    /api/auth/me                           - user of the bearer token
//
// Admin (bearer token required):
//
//	GET|POST        /api/admin/courses            - all courses / create
//	PUT|DELETE      /api/admin/courses/{id}
//	GET|POST        /api/admin/posts
//	PUT|DELETE      /api/admin/posts/{id}
//	GET|POST        /api/admin/announcements
//	PUT|DELETE      /api/admin/announcements/{id}
//	PUT             /api/admin/team
//	PUT             /api/admin/testimonials
//	PUT             /api/admin/social
//	POST            /api/admin/social/sync
//	PUT             /api/admin/settings
//	PUT             /api/admin/pageContent
//	GET             /api/admin/pages/schema
//	PUT             /api/admin/pages/{page}/{field}
//	GET             /api/admin/leads
//	GET|POST        /api/admin/lists/{list}       - categories, instructors, levels
//	DELETE          /api/admin/lists/{list}/{id}
//	GET             /api/admin/export             - download snapshot (?format=cbor)
//
// Every route except health answers 503 until content hydration finishes.
func (a *App) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(a.logRequests)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", a.handleHealth).Methods("GET")

	site := api.NewRoute().Subrouter()
	site.Use(a.requireHydrated)

	site.HandleFunc("/site", a.handleSite).Methods("GET")
	site.HandleFunc("/courses", a.handleListCourses).Methods("GET")
	site.HandleFunc("/courses/{id}", a.handleGetCourse).Methods("GET")
	site.HandleFunc("/courses/{id}/quiz", a.handleGetQuiz).Methods("GET")
	site.HandleFunc("/courses/{id}/quiz/{action}", a.handleQuizAction).Methods("POST")
	site.HandleFunc("/posts", a.handleListPosts).Methods("GET")
	site.HandleFunc("/posts/{id}", a.handleGetPost).Methods("GET")
	site.HandleFunc("/team", a.handleTeam).Methods("GET")
	site.HandleFunc("/testimonials", a.handleTestimonials).Methods("GET")
	site.HandleFunc("/social", a.handleSocial).Methods("GET")
	site.HandleFunc("/settings", a.handleSettings).Methods("GET")
	site.HandleFunc("/pages/{page}", a.handlePage).Methods("GET")
	site.HandleFunc("/announcement", a.handleAnnouncement).Methods("GET")
	site.HandleFunc("/announcement/{id}/dismiss", a.handleDismissAnnouncement).Methods("POST")
	site.HandleFunc("/leads", a.handleSubmitLead).Methods("POST")
	site.HandleFunc("/resolve", a.handleResolve).Methods("GET")

	site.HandleFunc("/auth/signin", a.handleSignIn).Methods("POST")
	site.HandleFunc("/auth/signout", a.handleSignOut).Methods("POST")
	site.HandleFunc("/auth/me", a.handleGetCurrentUser).Methods("GET")

	admin := site.PathPrefix("/admin").Subrouter()
	admin.Use(a.requireAdmin)

	admin.HandleFunc("/courses", a.handleAdminListCourses).Methods("GET")
	admin.HandleFunc("/courses", a.handleCreateCourse).Methods("POST")
	admin.HandleFunc("/courses/{id}", a.handleUpdateCourse).Methods("PUT")
	admin.HandleFunc("/courses/{id}", a.handleDeleteCourse).Methods("DELETE")
	admin.HandleFunc("/posts", a.handleListPosts).Methods("GET")
	admin.HandleFunc("/posts", a.handleCreatePost).Methods("POST")
	admin.HandleFunc("/posts/{id}", a.handleUpdatePost).Methods("PUT")
	admin.HandleFunc("/posts/{id}", a.handleDeletePost).Methods("DELETE")
	admin.HandleFunc("/announcements", a.handleListAnnouncements).Methods("GET")
	admin.HandleFunc("/announcements", a.handleCreateAnnouncement).Methods("POST")
	admin.HandleFunc("/announcements/{id}", a.handleUpdateAnnouncement).Methods("PUT")
	admin.HandleFunc("/announcements/{id}", a.handleDeleteAnnouncement).Methods("DELETE")
	admin.HandleFunc("/team", a.handleReplaceTeam).Methods("PUT")
	admin.HandleFunc("/testimonials", a.handleReplaceTestimonials).Methods("PUT")
	admin.HandleFunc("/social", a.handleReplaceSocial).Methods("PUT")
	admin.HandleFunc("/social/sync", a.handleSyncSocial).Methods("POST")
	admin.HandleFunc("/settings", a.handleUpdateSettings).Methods("PUT")
	admin.HandleFunc("/pageContent", a.handleUpdatePageContent).Methods("PUT")
	admin.HandleFunc("/pages/schema", a.handlePageSchema).Methods("GET")
	admin.HandleFunc("/pages/{page}/{field}", a.handleSetPageField).Methods("PUT")
	admin.HandleFunc("/leads", a.handleListLeads).Methods("GET")
	admin.HandleFunc("/lists/{list}", a.handleListItems).Methods("GET")
	admin.HandleFunc("/lists/{list}", a.handleAddListItem).Methods("POST")
	admin.HandleFunc("/lists/{list}/{id}", a.handleRemoveListItem).Methods("DELETE")
	admin.HandleFunc("/export", a.handleExport).Methods("GET")

	return router
}

// Run hydrates the content store in the background and serves the HTTP API
// until ctx is cancelled. On shutdown in-flight requests get up to 5 seconds
// to finish.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	go a.store.Hydrate(ctx)

	server := &http.Server{
		Addr:              a.config.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.log.Info().Str("addr", a.config.Addr).Str("backend", string(a.config.Backend)).
		Bool("read_only", a.IsReadOnly()).Msg("starting academy server")

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

func (a *App) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.log.Debug().Str("method", r.Method).Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).Msg("request")
	})
}

func (a *App) requireHydrated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.store.Hydrated() {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
