package academy

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// PageFieldRequest is the body of PUT /api/admin/pages/{page}/{field}.
type PageFieldRequest struct {
	Value string `json:"value"`
}

// ListItemRequest is the body of POST /api/admin/lists/{list}.
type ListItemRequest struct {
	Name string `json:"name"`
}

func (a *App) logAdmin(r *http.Request, action, id string) {
	ev := a.log.Info().Str("action", action).Str("id", id)
	if u, ok := currentUser(r.Context()); ok {
		ev = ev.Str("admin", u.Email)
	}
	ev.Msg("admin change")
}

func (a *App) handleAdminListCourses(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.store.Courses())
}

// checkCourse normalizes and validates an edited course.
func (a *App) checkCourse(c models.Course) (models.Course, error) {
	c = content.NormalizeCourse(c)
	if err := content.ValidateCourse(c); err != nil {
		return c, err
	}
	if err := content.CheckFeatured(a.store.Courses(), c); err != nil {
		return c, err
	}
	return c, nil
}

func (a *App) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var course models.Course
	if !decodeBody(w, r, &course) {
		return
	}
	course, err := a.checkCourse(course)
	if err != nil {
		respondErr(w, err)
		return
	}
	created, err := a.store.AddCourse(r.Context(), course)
	if err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "course.add", created.ID)
	respondJSON(w, http.StatusCreated, created)
}

func (a *App) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var course models.Course
	if !decodeBody(w, r, &course) {
		return
	}
	course.ID = mux.Vars(r)["id"]
	course, err := a.checkCourse(course)
	if err != nil {
		respondErr(w, err)
		return
	}
	if err := a.store.UpdateCourse(r.Context(), course); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "course.update", course.ID)
	respondJSON(w, http.StatusOK, course)
}

func (a *App) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := a.store.RemoveCourse(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "course.remove", id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var post models.BlogPost
	if !decodeBody(w, r, &post) {
		return
	}
	if post.Title == "" {
		respondError(w, http.StatusBadRequest, "Post title is required")
		return
	}
	created, err := a.store.AddPost(r.Context(), post)
	if err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "post.add", created.ID)
	respondJSON(w, http.StatusCreated, created)
}

func (a *App) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var post models.BlogPost
	if !decodeBody(w, r, &post) {
		return
	}
	post.ID = mux.Vars(r)["id"]
	if err := a.store.UpdatePost(r.Context(), post); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "post.update", post.ID)
	respondJSON(w, http.StatusOK, post)
}

func (a *App) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := a.store.RemovePost(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "post.remove", id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.store.Announcements())
}

func (a *App) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var ann models.Announcement
	if !decodeBody(w, r, &ann) {
		return
	}
	if err := content.CheckAnnouncementCap(a.store.Announcements()); err != nil {
		respondErr(w, err)
		return
	}
	created, err := a.store.AddAnnouncement(r.Context(), ann)
	if err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "announcement.add", created.ID)
	respondJSON(w, http.StatusCreated, created)
}

func (a *App) handleUpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var ann models.Announcement
	if !decodeBody(w, r, &ann) {
		return
	}
	ann.ID = mux.Vars(r)["id"]
	if err := a.store.UpdateAnnouncement(r.Context(), ann); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "announcement.update", ann.ID)
	respondJSON(w, http.StatusOK, ann)
}

func (a *App) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := a.store.RemoveAnnouncement(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "announcement.remove", id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleReplaceTeam(w http.ResponseWriter, r *http.Request) {
	var team []models.TeamMember
	if !decodeBody(w, r, &team) {
		return
	}
	if err := a.store.ReplaceTeam(r.Context(), team); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "team.replace", "")
	respondJSON(w, http.StatusOK, a.store.Team())
}

func (a *App) handleReplaceTestimonials(w http.ResponseWriter, r *http.Request) {
	var testimonials []models.Testimonial
	if !decodeBody(w, r, &testimonials) {
		return
	}
	if err := a.store.ReplaceTestimonials(r.Context(), testimonials); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "testimonials.replace", "")
	respondJSON(w, http.StatusOK, a.store.Testimonials())
}

func (a *App) handleReplaceSocial(w http.ResponseWriter, r *http.Request) {
	var feed []models.SocialFeedItem
	if !decodeBody(w, r, &feed) {
		return
	}
	if err := a.store.ReplaceSocialFeed(r.Context(), feed); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "social.replace", "")
	respondJSON(w, http.StatusOK, a.store.SocialFeed())
}

func (a *App) handleSyncSocial(w http.ResponseWriter, r *http.Request) {
	item, err := a.store.SyncSocial(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "social.sync", item.ID)
	respondJSON(w, http.StatusCreated, item)
}

func (a *App) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if !decodeBody(w, r, &settings) {
		return
	}
	if err := a.store.UpdateSettings(r.Context(), settings); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "settings.set", "")
	respondJSON(w, http.StatusOK, settings)
}

func (a *App) handleUpdatePageContent(w http.ResponseWriter, r *http.Request) {
	var pc models.PageContent
	if !decodeBody(w, r, &pc) {
		return
	}
	if err := a.store.UpdatePageContent(r.Context(), pc); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "pageContent.set", "")
	respondJSON(w, http.StatusOK, a.store.PageContent())
}

func (a *App) handlePageSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, content.PageFields(a.store.PageContent()))
}

func (a *App) handleSetPageField(w http.ResponseWriter, r *http.Request) {
	var req PageFieldRequest
	if !decodeBody(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	if err := a.store.SetPageField(r.Context(), vars["page"], vars["field"], req.Value); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, "pageContent.field", vars["page"]+"."+vars["field"])
	respondJSON(w, http.StatusOK, content.PageField{
		Page:      vars["page"],
		Field:     vars["field"],
		Value:     req.Value,
		Multiline: models.IsMultiline(req.Value),
	})
}

func (a *App) handleListLeads(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.store.Leads())
}

func listCollection(w http.ResponseWriter, r *http.Request) (models.Collection, bool) {
	coll, ok := models.ListCollection(mux.Vars(r)["list"])
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown list")
	}
	return coll, ok
}

func (a *App) handleListItems(w http.ResponseWriter, r *http.Request) {
	coll, ok := listCollection(w, r)
	if !ok {
		return
	}
	items, err := a.store.List(coll)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (a *App) handleAddListItem(w http.ResponseWriter, r *http.Request) {
	coll, ok := listCollection(w, r)
	if !ok {
		return
	}
	var req ListItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}
	item, err := a.store.AddListItem(r.Context(), coll, req.Name)
	if err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, coll.String()+".add", item.ID)
	respondJSON(w, http.StatusCreated, item)
}

func (a *App) handleRemoveListItem(w http.ResponseWriter, r *http.Request) {
	coll, ok := listCollection(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if err := a.store.RemoveListItem(r.Context(), coll, id); err != nil {
		respondErr(w, err)
		return
	}
	a.logAdmin(r, coll.String()+".remove", id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	format := content.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = content.FormatJSON
	}
	var buf bytes.Buffer
	if err := a.store.Export().Encode(&buf, format); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	name, contentType := content.ExportFileName, "application/json"
	if format == content.FormatCBOR {
		name, contentType = "academy_export.cbor", "application/cbor"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
