package content

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
	"github.com/colorbulb/nexteliteweb2/pkg/seeddata"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrMissingID   = errors.New("record id is required")
	ErrUnknownList = errors.New("unknown list")
	ErrDuplicateID = errors.New("record id already exists")
)

type state struct {
	courses       []models.Course
	posts         []models.BlogPost
	team          []models.TeamMember
	testimonials  []models.Testimonial
	socialFeed    []models.SocialFeedItem
	leads         []models.Lead
	announcements []models.Announcement
	settings      models.Settings
	pageContent   models.PageContent
	categories    []models.ListItem
	instructors   []models.ListItem
	levels        []models.ListItem
}

func stateFromDataset(d seeddata.Dataset) state {
	return state{
		courses:      d.Courses,
		posts:        d.BlogPosts,
		team:         d.Team,
		testimonials: d.Testimonials,
		socialFeed:   d.SocialFeed,
		settings:     d.Settings,
		pageContent:  d.PageContent,
	}
}

// Store is the in-memory content state plus the mutations that keep the
// document store in step with it.
type Store struct {
	client   *docstore.Client
	log      zerolog.Logger
	newID    models.IDGenerator
	now      func() time.Time
	policy   Policy
	defaults func() seeddata.Dataset
	writes   *writeQueue

	mu    sync.RWMutex
	state state

	hydrateOnce sync.Once
	hydrated    HydrationResult
	ready       chan struct{}
}

type Option func(*Store)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithIDGenerator sets the generator for records created without an id.
func WithIDGenerator(gen models.IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithPolicy(p Policy) Option {
	return func(s *Store) { s.policy = p }
}

// WithDefaults replaces the bundled dataset used for seeding and fallback.
func WithDefaults(defaults func() seeddata.Dataset) Option {
	return func(s *Store) { s.defaults = defaults }
}

// New returns a Store holding the default dataset until Hydrate runs.
func New(client *docstore.Client, opts ...Option) *Store {
	s := &Store{
		client:   client,
		log:      zerolog.Nop(),
		newID:    models.UUIDGenerator,
		now:      time.Now,
		policy:   DefaultPolicy(),
		defaults: seeddata.Default,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = stateFromDataset(s.defaults())
	s.writes = newWriteQueue(s.log)
	return s
}

// Flush waits for every queued remote write to finish.
func (s *Store) Flush(ctx context.Context) error {
	return s.writes.flush(ctx)
}

// Close drains queued writes and stops the write queue. Mutations after Close
// still change local state but their remote writes fail with ErrClosed.
func (s *Store) Close(ctx context.Context) error {
	return s.writes.close(ctx)
}

// Policy returns the failure policy in effect.
func (s *Store) Policy() Policy {
	return s.policy.clone()
}

func (s *Store) Courses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCourses(s.state.courses)
}

// PublicCourses returns the courses that are not disabled.
func (s *Store) PublicCourses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, 0, len(s.state.courses))
	for _, c := range s.state.courses {
		if !c.Disabled {
			out = append(out, cloneCourse(c))
		}
	}
	return out
}

// FeaturedCourses returns the featured courses that are not disabled.
func (s *Store) FeaturedCourses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Course
	for _, c := range s.state.courses {
		if c.Live() {
			out = append(out, cloneCourse(c))
		}
	}
	return out
}

func (s *Store) Course(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.state.courses {
		if c.ID == id {
			return cloneCourse(c), true
		}
	}
	return models.Course{}, false
}

func (s *Store) Posts() []models.BlogPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.state.posts)
	for i := range out {
		out[i].Images = slices.Clone(out[i].Images)
	}
	return out
}

func (s *Store) Post(id string) (models.BlogPost, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.state.posts {
		if p.ID == id {
			p.Images = slices.Clone(p.Images)
			return p, true
		}
	}
	return models.BlogPost{}, false
}

func (s *Store) Team() []models.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.team)
}

func (s *Store) Testimonials() []models.Testimonial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.testimonials)
}

func (s *Store) SocialFeed() []models.SocialFeedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.socialFeed)
}

// Leads returns the leads, newest first.
func (s *Store) Leads() []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.leads)
}

func (s *Store) Announcements() []models.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.announcements)
}

func (s *Store) Announcement(id string) (models.Announcement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.state.announcements {
		if a.ID == id {
			return a, true
		}
	}
	return models.Announcement{}, false
}

func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.settings
}

func (s *Store) PageContent() models.PageContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.pageContent.Clone()
}

// List returns one of the auxiliary lists (categories, instructors, levels).
func (s *Store) List(coll models.Collection) ([]models.ListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, err := s.state.list(coll)
	if err != nil {
		return nil, err
	}
	return slices.Clone(*list), nil
}

func (st *state) list(coll models.Collection) (*[]models.ListItem, error) {
	switch coll {
	case models.CollectionCategories:
		return &st.categories, nil
	case models.CollectionInstructors:
		return &st.instructors, nil
	case models.CollectionLevels:
		return &st.levels, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownList, coll)
}

func cloneCourses(in []models.Course) []models.Course {
	out := make([]models.Course, len(in))
	for i, c := range in {
		out[i] = cloneCourse(c)
	}
	return out
}

func cloneCourse(c models.Course) models.Course {
	c.Syllabus = slices.Clone(c.Syllabus)
	if c.Preview != nil {
		p := *c.Preview
		if quiz, ok := p.Body.(models.QuizPreview); ok {
			questions := make([]models.QuizQuestion, len(quiz.Questions))
			for i, q := range quiz.Questions {
				q.Options = slices.Clone(q.Options)
				questions[i] = q
			}
			p.Body = models.QuizPreview{Questions: questions}
		}
		c.Preview = &p
	}
	return c
}
