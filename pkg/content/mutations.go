package content

import (
	"context"
	"fmt"
	"slices"

	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// apply runs mutate on the local state and queues run as the matching remote
// write, both under the state lock so remote writes keep the order of local
// edits. Under Propagate it then waits for the write and returns its error;
// under Swallow it returns as soon as the write is queued.
func (s *Store) apply(ctx context.Context, coll models.Collection, op Op, id string, mutate func(*state) error, run func(ctx context.Context) error) error {
	job := writeJob{coll: coll, op: op, id: id, run: run}
	propagate := s.policy.For(coll, op) == Propagate
	if propagate {
		job.result = make(chan error, 1)
	}

	s.mu.Lock()
	if err := mutate(&s.state); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.writes.submit(ctx, job)
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("collection", coll.String()).Str("op", string(op)).Str("id", id).Msg("remote write not queued")
		if propagate {
			return err
		}
		return nil
	}
	if !propagate {
		return nil
	}
	return wait(ctx, job)
}

func (s *Store) putRecord(coll models.Collection, record any) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := docstore.Put(ctx, s.client, coll, record)
		return err
	}
}

func (s *Store) deleteRecord(coll models.Collection, id string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return s.client.DeleteByID(ctx, coll, id)
	}
}

func replaceAll[T any](s *Store, coll models.Collection, records []T) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return docstore.Replace(ctx, s.client, coll, records)
	}
}

func (s *Store) setSingleton(coll models.Collection, value any) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return docstore.SetValue(ctx, s.client, coll, value)
	}
}

// replaceByID returns a copy of list with the element matching v's id
// replaced, or ErrNotFound.
func replaceByID[T any](list []T, id func(T) string, v T, kind string) ([]T, error) {
	i := slices.IndexFunc(list, func(e T) bool { return id(e) == id(v) })
	if i < 0 {
		return nil, fmt.Errorf("%s %q: %w", kind, id(v), ErrNotFound)
	}
	out := slices.Clone(list)
	out[i] = v
	return out, nil
}

// appendNew returns a copy of list with v appended, or ErrDuplicateID when an
// element already has v's id.
func appendNew[T any](list []T, id func(T) string, v T, kind string) ([]T, error) {
	if slices.ContainsFunc(list, func(e T) bool { return id(e) == id(v) }) {
		return nil, fmt.Errorf("%s %q: %w", kind, id(v), ErrDuplicateID)
	}
	return append(slices.Clone(list), v), nil
}

func withoutID[T any](list []T, id func(T) string, target string) []T {
	return slices.DeleteFunc(slices.Clone(list), func(e T) bool { return id(e) == target })
}

func courseID(c models.Course) string             { return c.ID }
func postID(p models.BlogPost) string             { return p.ID }
func announcementID(a models.Announcement) string { return a.ID }
func listItemID(i models.ListItem) string         { return i.ID }

// AddCourse appends the course, assigning an id if it has none, and writes it.
// An id that is already in use is rejected with ErrDuplicateID.
func (s *Store) AddCourse(ctx context.Context, c models.Course) (models.Course, error) {
	if c.ID == "" {
		c.ID = s.newID()
	}
	c = cloneCourse(c)
	err := s.apply(ctx, models.CollectionCourses, OpAdd, c.ID, func(st *state) error {
		courses, err := appendNew(st.courses, courseID, c, "course")
		if err != nil {
			return err
		}
		st.courses = courses
		return nil
	}, s.putRecord(models.CollectionCourses, c))
	return cloneCourse(c), err
}

// UpdateCourse replaces the course with the same id.
func (s *Store) UpdateCourse(ctx context.Context, c models.Course) error {
	if c.ID == "" {
		return ErrMissingID
	}
	c = cloneCourse(c)
	return s.apply(ctx, models.CollectionCourses, OpUpdate, c.ID, func(st *state) error {
		courses, err := replaceByID(st.courses, courseID, c, "course")
		if err != nil {
			return err
		}
		st.courses = courses
		return nil
	}, s.putRecord(models.CollectionCourses, c))
}

func (s *Store) RemoveCourse(ctx context.Context, id string) error {
	return s.apply(ctx, models.CollectionCourses, OpRemove, id, func(st *state) error {
		st.courses = withoutID(st.courses, courseID, id)
		return nil
	}, s.deleteRecord(models.CollectionCourses, id))
}

// AddPost appends the post. New posts without a date are dated today.
func (s *Store) AddPost(ctx context.Context, p models.BlogPost) (models.BlogPost, error) {
	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.Date == "" {
		p.Date = s.now().Format(models.PostDateLayout)
	}
	p.Images = slices.Clone(p.Images)
	err := s.apply(ctx, models.CollectionBlogPosts, OpAdd, p.ID, func(st *state) error {
		posts, err := appendNew(st.posts, postID, p, "post")
		if err != nil {
			return err
		}
		st.posts = posts
		return nil
	}, s.putRecord(models.CollectionBlogPosts, p))
	return p, err
}

func (s *Store) UpdatePost(ctx context.Context, p models.BlogPost) error {
	if p.ID == "" {
		return ErrMissingID
	}
	p.Images = slices.Clone(p.Images)
	return s.apply(ctx, models.CollectionBlogPosts, OpUpdate, p.ID, func(st *state) error {
		posts, err := replaceByID(st.posts, postID, p, "post")
		if err != nil {
			return err
		}
		st.posts = posts
		return nil
	}, s.putRecord(models.CollectionBlogPosts, p))
}

func (s *Store) RemovePost(ctx context.Context, id string) error {
	return s.apply(ctx, models.CollectionBlogPosts, OpRemove, id, func(st *state) error {
		st.posts = withoutID(st.posts, postID, id)
		return nil
	}, s.deleteRecord(models.CollectionBlogPosts, id))
}

// AddLead records a submission, keeping leads ordered newest first. A lead
// without a date is dated now.
func (s *Store) AddLead(ctx context.Context, l models.Lead) (models.Lead, error) {
	if l.ID == "" {
		l.ID = s.newID()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}
	err := s.apply(ctx, models.CollectionLeads, OpAdd, l.ID, func(st *state) error {
		st.leads = insertLead(st.leads, l)
		return nil
	}, s.putRecord(models.CollectionLeads, l))
	return l, err
}

// insertLead places l before the first lead that is not newer than it.
func insertLead(leads []models.Lead, l models.Lead) []models.Lead {
	i := slices.IndexFunc(leads, func(e models.Lead) bool { return !e.CreatedAt.After(l.CreatedAt) })
	if i < 0 {
		i = len(leads)
	}
	return slices.Insert(slices.Clone(leads), i, l)
}

func (s *Store) AddAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	if a.ID == "" {
		a.ID = s.newID()
	}
	err := s.apply(ctx, models.CollectionAnnouncements, OpAdd, a.ID, func(st *state) error {
		anns, err := appendNew(st.announcements, announcementID, a, "announcement")
		if err != nil {
			return err
		}
		st.announcements = anns
		return nil
	}, s.putRecord(models.CollectionAnnouncements, a))
	return a, err
}

func (s *Store) UpdateAnnouncement(ctx context.Context, a models.Announcement) error {
	if a.ID == "" {
		return ErrMissingID
	}
	return s.apply(ctx, models.CollectionAnnouncements, OpUpdate, a.ID, func(st *state) error {
		anns, err := replaceByID(st.announcements, announcementID, a, "announcement")
		if err != nil {
			return err
		}
		st.announcements = anns
		return nil
	}, s.putRecord(models.CollectionAnnouncements, a))
}

func (s *Store) RemoveAnnouncement(ctx context.Context, id string) error {
	return s.apply(ctx, models.CollectionAnnouncements, OpRemove, id, func(st *state) error {
		st.announcements = withoutID(st.announcements, announcementID, id)
		return nil
	}, s.deleteRecord(models.CollectionAnnouncements, id))
}

// AddListItem appends a named entry to categories, instructors or levels.
func (s *Store) AddListItem(ctx context.Context, coll models.Collection, name string) (models.ListItem, error) {
	item := models.ListItem{ID: s.newID(), Name: name}
	err := s.apply(ctx, coll, OpAdd, item.ID, func(st *state) error {
		list, err := st.list(coll)
		if err != nil {
			return err
		}
		*list = append(slices.Clone(*list), item)
		return nil
	}, s.putRecord(coll, item))
	return item, err
}

func (s *Store) RemoveListItem(ctx context.Context, coll models.Collection, id string) error {
	return s.apply(ctx, coll, OpRemove, id, func(st *state) error {
		list, err := st.list(coll)
		if err != nil {
			return err
		}
		*list = withoutID(*list, listItemID, id)
		return nil
	}, s.deleteRecord(coll, id))
}

// ReplaceTeam sets the whole team list. Members without an id get one.
func (s *Store) ReplaceTeam(ctx context.Context, team []models.TeamMember) error {
	team = slices.Clone(team)
	for i := range team {
		if team[i].ID == "" {
			team[i].ID = s.newID()
		}
	}
	return s.apply(ctx, models.CollectionTeam, OpReplace, "", func(st *state) error {
		st.team = team
		return nil
	}, replaceAll(s, models.CollectionTeam, slices.Clone(team)))
}

func (s *Store) ReplaceTestimonials(ctx context.Context, testimonials []models.Testimonial) error {
	testimonials = slices.Clone(testimonials)
	for i := range testimonials {
		if testimonials[i].ID == "" {
			testimonials[i].ID = s.newID()
		}
	}
	return s.apply(ctx, models.CollectionTestimonials, OpReplace, "", func(st *state) error {
		st.testimonials = testimonials
		return nil
	}, replaceAll(s, models.CollectionTestimonials, slices.Clone(testimonials)))
}

func (s *Store) ReplaceSocialFeed(ctx context.Context, feed []models.SocialFeedItem) error {
	feed = slices.Clone(feed)
	for i := range feed {
		if feed[i].ID == "" {
			feed[i].ID = s.newID()
		}
	}
	return s.apply(ctx, models.CollectionSocialFeed, OpReplace, "", func(st *state) error {
		st.socialFeed = feed
		return nil
	}, replaceAll(s, models.CollectionSocialFeed, slices.Clone(feed)))
}

// SyncedCaption is the caption of items pulled in by SyncSocial.
const SyncedCaption = "Synced content from Instagram API... #LiveUpdate"

// SyncSocial pulls a fresh instagram post onto the top of the feed.
func (s *Store) SyncSocial(ctx context.Context) (models.SocialFeedItem, error) {
	item := models.SocialFeedItem{
		ID:       s.newID(),
		Platform: models.PlatformInstagram,
		Image:    fmt.Sprintf("https://picsum.photos/400/400?random=%d", s.now().UnixMilli()),
		Caption:  SyncedCaption,
	}
	var feed []models.SocialFeedItem
	err := s.apply(ctx, models.CollectionSocialFeed, OpReplace, "", func(st *state) error {
		feed = append([]models.SocialFeedItem{item}, st.socialFeed...)
		st.socialFeed = feed
		return nil
	}, func(ctx context.Context) error {
		return docstore.Replace(ctx, s.client, models.CollectionSocialFeed, feed)
	})
	return item, err
}

func (s *Store) UpdateSettings(ctx context.Context, settings models.Settings) error {
	return s.apply(ctx, models.CollectionSettings, OpSet, models.SingletonID, func(st *state) error {
		st.settings = settings
		return nil
	}, s.setSingleton(models.CollectionSettings, settings))
}

func (s *Store) UpdatePageContent(ctx context.Context, pc models.PageContent) error {
	pc = pc.Clone()
	return s.apply(ctx, models.CollectionPageContent, OpSet, models.SingletonID, func(st *state) error {
		st.pageContent = pc.Clone()
		return nil
	}, s.setSingleton(models.CollectionPageContent, pc))
}

// SetPageField changes one field of one page and writes the whole singleton.
func (s *Store) SetPageField(ctx context.Context, page, field, value string) error {
	var pc models.PageContent
	return s.apply(ctx, models.CollectionPageContent, OpSet, models.SingletonID, func(st *state) error {
		pc = st.pageContent.Clone()
		if pc == nil {
			pc = models.PageContent{}
		}
		if pc[page] == nil {
			pc[page] = map[string]string{}
		}
		pc[page][field] = value
		st.pageContent = pc.Clone()
		return nil
	}, func(ctx context.Context) error {
		return docstore.SetValue(ctx, s.client, models.CollectionPageContent, pc)
	})
}
