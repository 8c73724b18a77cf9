package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// Export is a point-in-time snapshot of every collection.
type Export struct {
	Timestamp     time.Time               `json:"timestamp"`
	Courses       []models.Course         `json:"courses"`
	BlogPosts     []models.BlogPost       `json:"blogPosts"`
	Settings      models.Settings         `json:"settings"`
	PageContent   models.PageContent      `json:"pageContent"`
	Team          []models.TeamMember     `json:"team"`
	Testimonials  []models.Testimonial    `json:"testimonials"`
	SocialFeed    []models.SocialFeedItem `json:"socialFeed"`
	Leads         []models.Lead           `json:"leads"`
	Announcements []models.Announcement   `json:"announcements"`
	Categories    []models.ListItem       `json:"categories"`
	Instructors   []models.ListItem       `json:"instructors"`
	Levels        []models.ListItem       `json:"levels"`
}

type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ExportFileName is the download name offered to admins.
const ExportFileName = "academy_export.json"

// Export snapshots the in-memory state.
func (s *Store) Export() Export {
	e := Export{
		Timestamp:     s.now().UTC(),
		Courses:       s.Courses(),
		BlogPosts:     s.Posts(),
		Settings:      s.Settings(),
		PageContent:   s.PageContent(),
		Team:          s.Team(),
		Testimonials:  s.Testimonials(),
		SocialFeed:    s.SocialFeed(),
		Leads:         s.Leads(),
		Announcements: s.Announcements(),
	}
	e.Categories, _ = s.List(models.CollectionCategories)
	e.Instructors, _ = s.List(models.CollectionInstructors)
	e.Levels, _ = s.List(models.CollectionLevels)
	return e
}

// ExportFrom snapshots the document store directly, without a hydrated Store.
// Absent singletons are left zero.
func ExportFrom(ctx context.Context, client *docstore.Client, now time.Time) Export {
	e := Export{
		Timestamp:     now.UTC(),
		Courses:       docstore.List[models.Course](ctx, client, models.CollectionCourses),
		BlogPosts:     docstore.List[models.BlogPost](ctx, client, models.CollectionBlogPosts),
		Team:          docstore.List[models.TeamMember](ctx, client, models.CollectionTeam),
		Testimonials:  docstore.List[models.Testimonial](ctx, client, models.CollectionTestimonials),
		SocialFeed:    docstore.List[models.SocialFeedItem](ctx, client, models.CollectionSocialFeed),
		Leads:         sortLeads(docstore.List[models.Lead](ctx, client, models.CollectionLeads)),
		Announcements: docstore.List[models.Announcement](ctx, client, models.CollectionAnnouncements),
		Categories:    docstore.List[models.ListItem](ctx, client, models.CollectionCategories),
		Instructors:   docstore.List[models.ListItem](ctx, client, models.CollectionInstructors),
		Levels:        docstore.List[models.ListItem](ctx, client, models.CollectionLevels),
	}
	e.Settings, _ = docstore.Singleton[models.Settings](ctx, client, models.CollectionSettings)
	e.PageContent, _ = docstore.Singleton[models.PageContent](ctx, client, models.CollectionPageContent)
	return e
}

// Encode writes the export as indented JSON or as CBOR. The CBOR form has the
// same shape as the JSON one.
func (e Export) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	case FormatCBOR:
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		out, err := cbor.Marshal(generic)
		if err != nil {
			return fmt.Errorf("failed to encode export as cbor: %w", err)
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
