package academy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/colorbulb/nexteliteweb2/pkg/announce"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
	"github.com/colorbulb/nexteliteweb2/pkg/quiz"
)

const (
	visitorSessionName = "academy_visitor"
	visitorIDKey       = "visitorId"
	quizKeyPrefix      = "quiz:"
)

// visitorStorage is the durable per-browser storage of one visitor: the
// session cookie, mirrored to Redis when configured. The cookie wins on read.
type visitorStorage struct {
	session *sessions.Session
	mirror  announce.Storage
}

func (v *visitorStorage) Get(ctx context.Context, key string) (string, error) {
	if s, ok := v.session.Values[key].(string); ok && s != "" {
		return s, nil
	}
	if v.mirror == nil {
		return "", nil
	}
	return v.mirror.Get(ctx, key)
}

func (v *visitorStorage) Set(ctx context.Context, key, value string) error {
	v.session.Values[key] = value
	if v.mirror == nil {
		return nil
	}
	return v.mirror.Set(ctx, key, value)
}

// visitor loads the visitor's storage. A tampered or expired cookie starts a
// fresh visitor.
func (a *App) visitor(r *http.Request) *visitorStorage {
	session, err := a.sessions.Get(r, visitorSessionName)
	if err != nil {
		a.log.Debug().Err(err).Msg("discarding unreadable visitor cookie")
	}
	id, _ := session.Values[visitorIDKey].(string)
	if id == "" {
		id = uuid.NewString()
		session.Values[visitorIDKey] = id
	}
	v := &visitorStorage{session: session}
	if a.redis != nil {
		v.mirror = announce.NewRedisStorage(a.redis, id, 0)
	}
	return v
}

func (a *App) saveVisitor(w http.ResponseWriter, r *http.Request, v *visitorStorage) bool {
	if err := v.session.Save(r, w); err != nil {
		a.log.Error().Err(err).Msg("failed to save visitor cookie")
		respondError(w, http.StatusInternalServerError, "Failed to save visitor session")
		return false
	}
	return true
}

// AnnouncementResponse is the payload of GET /api/announcement. Announcement
// is nil when nothing should be shown.
type AnnouncementResponse struct {
	Announcement *models.Announcement `json:"announcement"`
}

func (a *App) handleAnnouncement(w http.ResponseWriter, r *http.Request) {
	v := a.visitor(r)
	ann, ok, err := a.selector.Pick(r.Context(), a.store.Announcements(), v)
	if err != nil {
		a.log.Warn().Err(err).Msg("visitor storage unavailable, showing no announcement")
		ok = false
	}
	if !a.saveVisitor(w, r, v) {
		return
	}
	if !ok {
		respondJSON(w, http.StatusOK, AnnouncementResponse{})
		return
	}
	respondJSON(w, http.StatusOK, AnnouncementResponse{Announcement: &ann})
}

func (a *App) handleDismissAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := a.store.Announcement(id); !ok {
		respondError(w, http.StatusNotFound, "Announcement not found")
		return
	}
	v := a.visitor(r)
	if err := a.selector.Dismiss(r.Context(), v, id); err != nil {
		a.log.Warn().Err(err).Str("id", id).Msg("failed to mirror dismissed announcement")
	}
	if !a.saveVisitor(w, r, v) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// QuizView is the visitor's view of a course preview quiz. The correct
// answer is revealed only once the current question has been checked.
type QuizView struct {
	CourseID      string     `json:"courseId"`
	Title         string     `json:"title"`
	Total         int        `json:"total"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer *int       `json:"correctAnswer,omitempty"`
	State         quiz.State `json:"state"`
}

// QuizAction is the body of POST /api/courses/{id}/quiz/{action}.
type QuizAction struct {
	Option int `json:"option"`
}

// quizRunner rebuilds the visitor's runner for the course in the path.
// Unreadable saved progress starts the quiz over.
func (a *App) quizRunner(w http.ResponseWriter, r *http.Request) (models.Course, *visitorStorage, *quiz.Runner, bool) {
	course, ok := a.publicCourse(w, r)
	if !ok {
		return models.Course{}, nil, nil, false
	}
	questions := course.Preview.Questions()
	if len(questions) == 0 {
		respondError(w, http.StatusNotFound, "Course has no quiz")
		return models.Course{}, nil, nil, false
	}

	v := a.visitor(r)
	runner, _ := quiz.New(questions)
	if saved, _ := v.session.Values[quizKeyPrefix+course.ID].(string); saved != "" {
		var st quiz.State
		if err := json.Unmarshal([]byte(saved), &st); err == nil {
			if restored, err := quiz.Restore(questions, st); err == nil {
				runner = restored
			}
		}
	}
	return course, v, runner, true
}

func (a *App) respondQuiz(w http.ResponseWriter, r *http.Request, course models.Course, v *visitorStorage, runner *quiz.Runner) {
	st := runner.State()
	data, err := json.Marshal(st)
	if err != nil {
		respondErr(w, err)
		return
	}
	v.session.Values[quizKeyPrefix+course.ID] = string(data)
	if !a.saveVisitor(w, r, v) {
		return
	}

	q := runner.Question()
	view := QuizView{
		CourseID: course.ID,
		Title:    course.Preview.Title,
		Total:    runner.Len(),
		Question: q.Question,
		Options:  q.Options,
		State:    st,
	}
	if st.Answer != quiz.Unanswered {
		correct := q.CorrectAnswer
		view.CorrectAnswer = &correct
	}
	respondJSON(w, http.StatusOK, view)
}

func (a *App) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	course, v, runner, ok := a.quizRunner(w, r)
	if !ok {
		return
	}
	a.respondQuiz(w, r, course, v, runner)
}

func (a *App) handleQuizAction(w http.ResponseWriter, r *http.Request) {
	course, v, runner, ok := a.quizRunner(w, r)
	if !ok {
		return
	}

	var err error
	switch mux.Vars(r)["action"] {
	case "select":
		var body QuizAction
		if !decodeBody(w, r, &body) {
			return
		}
		err = runner.SelectOption(body.Option)
	case "check":
		err = runner.Check()
	case "next":
		err = runner.Next()
	case "restart":
		err = runner.Restart()
	default:
		respondError(w, http.StatusNotFound, "Unknown quiz action")
		return
	}
	if err != nil {
		respondErr(w, err)
		return
	}
	a.respondQuiz(w, r, course, v, runner)
}
