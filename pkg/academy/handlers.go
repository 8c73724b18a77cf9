package academy

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/colorbulb/nexteliteweb2/pkg/auth"
	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
	"github.com/colorbulb/nexteliteweb2/pkg/quiz"
	"github.com/colorbulb/nexteliteweb2/pkg/routes"
)

// Site is the payload of GET /api/site.
type Site struct {
	Courses         []models.Course         `json:"courses"`
	FeaturedCourses []models.Course         `json:"featuredCourses"`
	Posts           []models.BlogPost       `json:"posts"`
	Team            []models.TeamMember     `json:"team"`
	Testimonials    []models.Testimonial    `json:"testimonials"`
	SocialFeed      []models.SocialFeedItem `json:"socialFeed"`
	Settings        models.Settings         `json:"settings"`
	PageContent     models.PageContent      `json:"pageContent"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondErr maps err to a status code and writes it.
func respondErr(w http.ResponseWriter, err error) {
	respondError(w, errorStatus(err), err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, content.ErrNotFound), errors.Is(err, content.ErrUnknownList),
		errors.Is(err, docstore.ErrNotFound), errors.Is(err, routes.ErrUnknownPath):
		return http.StatusNotFound
	case errors.Is(err, content.ErrMissingID), errors.Is(err, content.ErrInvalidCourse),
		errors.Is(err, models.ErrInvalidLead), errors.Is(err, models.ErrInvalidPreview),
		errors.Is(err, quiz.ErrInvalidOption), errors.Is(err, quiz.ErrNoQuestions):
		return http.StatusBadRequest
	case errors.Is(err, content.ErrFeaturedLimit), errors.Is(err, content.ErrAnnouncementLimit),
		errors.Is(err, content.ErrDuplicateID),
		errors.Is(err, quiz.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, docstore.ErrReadOnly), errors.Is(err, content.ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "loading"
	if a.store.Hydrated() {
		status = "healthy"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"backend":   a.config.Backend,
		"read_only": a.IsReadOnly(),
		"time":      time.Now().Unix(),
	})
}

func (a *App) handleSite(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Site{
		Courses:         a.store.PublicCourses(),
		FeaturedCourses: a.store.FeaturedCourses(),
		Posts:           a.store.Posts(),
		Team:            a.store.Team(),
		Testimonials:    a.store.Testimonials(),
		SocialFeed:      a.store.SocialFeed(),
		Settings:        a.store.Settings(),
		PageContent:     a.store.PageContent(),
	})
}

func (a *App) handleListCourses(w http.ResponseWriter, r *http.Request) {
	if featured, _ := strconv.ParseBool(r.URL.Query().Get("featured")); featured {
		respondJSON(w, http.StatusOK, a.store.FeaturedCourses())
		return
	}
	respondJSON(w, http.StatusOK, a.store.PublicCourses())
}

// publicCourse returns the course with the id in the path unless it is
// missing or disabled.
func (a *App) publicCourse(w http.ResponseWriter, r *http.Request) (models.Course, bool) {
	course, ok := a.store.Course(mux.Vars(r)["id"])
	if !ok || course.Disabled {
		respondError(w, http.StatusNotFound, "Course not found")
		return models.Course{}, false
	}
	return course, true
}

func (a *App) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	if course, ok := a.publicCourse(w, r); ok {
		respondJSON(w, http.StatusOK, course)
	}
}

func (a *App) handleListPosts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.store.Posts())
}

func (a *App) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := a.store.Post(mux.Vars(r)["id"])
	if !ok {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (a *App) handleTeam(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.store.Team())
}

func (a *App) handleTestimonials(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.store.Testimonials())
}

func (a *App) handleSocial(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.store.SocialFeed())
}

func (a *App) handleSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.store.Settings())
}

func (a *App) handlePage(w http.ResponseWriter, r *http.Request) {
	fields, ok := a.store.PageContent()[mux.Vars(r)["page"]]
	if !ok {
		respondError(w, http.StatusNotFound, "Page not found")
		return
	}
	respondJSON(w, http.StatusOK, fields)
}

func (a *App) handleSubmitLead(w http.ResponseWriter, r *http.Request) {
	var lead models.Lead
	if !decodeBody(w, r, &lead) {
		return
	}
	lead.ID = ""
	if err := lead.Validate(); err != nil {
		respondErr(w, err)
		return
	}
	saved, err := a.store.AddLead(r.Context(), lead)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (a *App) handleResolve(w http.ResponseWriter, r *http.Request) {
	route, err := routes.Parse(r.URL.Query().Get("path"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, route)
}
