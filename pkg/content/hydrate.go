package content

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
	"github.com/colorbulb/nexteliteweb2/pkg/seeddata"
)

// Source tells where the hydrated state came from.
type Source string

const (
	SourceStore    Source = "store"
	SourceSeeded   Source = "seeded"
	SourceDefaults Source = "defaults"
)

// HydrationResult describes the outcome of Hydrate. Err is the failure that
// caused a fallback to the bundled defaults, if any.
type HydrationResult struct {
	Source Source
	Err    error
}

var errSeedNotVisible = errors.New("seeded courses not visible on re-read")

// snapshot is the result of one concurrent read of every collection.
type snapshot struct {
	courses       []models.Course
	posts         []models.BlogPost
	team          []models.TeamMember
	testimonials  []models.Testimonial
	socialFeed    []models.SocialFeedItem
	leads         []models.Lead
	announcements []models.Announcement
	categories    []models.ListItem
	instructors   []models.ListItem
	levels        []models.ListItem
	settings      *models.Settings
	pageContent   models.PageContent
}

// Ready is closed once Hydrate has completed.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Hydrated reports whether Hydrate has completed.
func (s *Store) Hydrated() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Hydrate loads the initial state from the document store. It runs once;
// later calls wait for and return the first result.
//
// A non-empty courses collection is adopted as is, keeping bundled defaults
// for singletons the store does not have. An empty one is seeded with the
// bundled dataset and re-read. Any failure on the way leaves the bundled
// defaults in place. Hydrate never returns an error.
func (s *Store) Hydrate(ctx context.Context) HydrationResult {
	s.hydrateOnce.Do(func() {
		defer close(s.ready)
		st, res := s.hydrate(ctx)
		s.mu.Lock()
		s.state = st
		s.mu.Unlock()
		s.hydrated = res

		if res.Err != nil {
			s.log.Warn().Err(res.Err).Str("source", string(res.Source)).Msg("content hydration fell back to defaults")
			return
		}
		s.log.Info().Str("source", string(res.Source)).Int("courses", len(st.courses)).Msg("content hydrated")
	})
	<-s.ready
	return s.hydrated
}

func (s *Store) hydrate(ctx context.Context) (state, HydrationResult) {
	defaults := s.defaults()

	snap, err := s.fetch(ctx)
	if err != nil {
		return stateFromDataset(defaults), HydrationResult{Source: SourceDefaults, Err: err}
	}
	if len(snap.courses) > 0 {
		return snap.adopt(defaults), HydrationResult{Source: SourceStore}
	}

	s.log.Info().Msg("courses collection empty, seeding bundled content")
	if err := writeDataset(ctx, s.client, s.defaults()); err != nil {
		return stateFromDataset(defaults), HydrationResult{Source: SourceDefaults, Err: fmt.Errorf("seed failed: %w", err)}
	}

	reread, err := s.fetch(ctx)
	if err != nil {
		return stateFromDataset(defaults), HydrationResult{Source: SourceDefaults, Err: err}
	}
	if len(reread.courses) == 0 {
		return stateFromDataset(defaults), HydrationResult{Source: SourceDefaults, Err: errSeedNotVisible}
	}
	return reread.adopt(defaults), HydrationResult{Source: SourceSeeded}
}

// fetch reads every collection and singleton concurrently. Read failures
// surface as empty collections; only cancellation of ctx is an error.
func (s *Store) fetch(ctx context.Context) (*snapshot, error) {
	snap := &snapshot{}
	c := s.client
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { snap.courses = docstore.List[models.Course](gctx, c, models.CollectionCourses); return nil })
	g.Go(func() error { snap.posts = docstore.List[models.BlogPost](gctx, c, models.CollectionBlogPosts); return nil })
	g.Go(func() error { snap.team = docstore.List[models.TeamMember](gctx, c, models.CollectionTeam); return nil })
	g.Go(func() error {
		snap.testimonials = docstore.List[models.Testimonial](gctx, c, models.CollectionTestimonials)
		return nil
	})
	g.Go(func() error {
		snap.socialFeed = docstore.List[models.SocialFeedItem](gctx, c, models.CollectionSocialFeed)
		return nil
	})
	g.Go(func() error { snap.leads = docstore.List[models.Lead](gctx, c, models.CollectionLeads); return nil })
	g.Go(func() error {
		snap.announcements = docstore.List[models.Announcement](gctx, c, models.CollectionAnnouncements)
		return nil
	})
	g.Go(func() error { snap.categories = docstore.List[models.ListItem](gctx, c, models.CollectionCategories); return nil })
	g.Go(func() error {
		snap.instructors = docstore.List[models.ListItem](gctx, c, models.CollectionInstructors)
		return nil
	})
	g.Go(func() error { snap.levels = docstore.List[models.ListItem](gctx, c, models.CollectionLevels); return nil })
	g.Go(func() error {
		if v, ok := docstore.Singleton[models.Settings](gctx, c, models.CollectionSettings); ok {
			snap.settings = &v
		}
		return nil
	})
	g.Go(func() error {
		if v, ok := docstore.Singleton[models.PageContent](gctx, c, models.CollectionPageContent); ok {
			snap.pageContent = v
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

// adopt builds the state from a snapshot, keeping defaults for absent singletons.
func (snap *snapshot) adopt(defaults seeddata.Dataset) state {
	st := state{
		courses:       snap.courses,
		posts:         snap.posts,
		team:          snap.team,
		testimonials:  snap.testimonials,
		socialFeed:    snap.socialFeed,
		leads:         sortLeads(snap.leads),
		announcements: snap.announcements,
		categories:    snap.categories,
		instructors:   snap.instructors,
		levels:        snap.levels,
		settings:      defaults.Settings,
		pageContent:   defaults.PageContent,
	}
	if snap.settings != nil {
		st.settings = *snap.settings
	}
	if snap.pageContent != nil {
		st.pageContent = snap.pageContent
	}
	return st
}

// sortLeads orders leads newest first.
func sortLeads(leads []models.Lead) []models.Lead {
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	return leads
}
