package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

const (
	// MaxFeatured is the number of live courses that may be featured at once.
	MaxFeatured = 3
	// MaxAnnouncements caps how many announcements may exist.
	MaxAnnouncements = 5
)

var (
	ErrFeaturedLimit     = fmt.Errorf("only %d courses can be featured at once", MaxFeatured)
	ErrAnnouncementLimit = fmt.Errorf("maximum of %d announcements reached", MaxAnnouncements)
	ErrInvalidCourse     = errors.New("invalid course")
)

// NormalizeCourse clears Featured on disabled courses.
func NormalizeCourse(c models.Course) models.Course {
	if c.Disabled {
		c.Featured = false
	}
	return c
}

// CheckFeatured rejects the candidate when it would become the fourth live
// featured course. The candidate itself is excluded from the count so that
// saving an already featured course is always allowed.
func CheckFeatured(existing []models.Course, candidate models.Course) error {
	if !candidate.Live() {
		return nil
	}
	n := 0
	for _, c := range existing {
		if c.Live() && (candidate.ID == "" || c.ID != candidate.ID) {
			n++
		}
	}
	if n >= MaxFeatured {
		return ErrFeaturedLimit
	}
	return nil
}

// ValidateCourse checks the fields an editor must fill in.
func ValidateCourse(c models.Course) error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidCourse)
	}
	if c.Preview != nil {
		if err := c.Preview.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCourse, err)
		}
	}
	return nil
}

// CheckAnnouncementCap rejects creating an announcement once the cap is reached.
// Edits to existing announcements are not capped.
func CheckAnnouncementCap(existing []models.Announcement) error {
	if len(existing) >= MaxAnnouncements {
		return ErrAnnouncementLimit
	}
	return nil
}

// PageField describes one editable page-content field.
type PageField struct {
	Page      string `json:"page"`
	Field     string `json:"field"`
	Value     string `json:"value"`
	Multiline bool   `json:"multiline"`
}

// PageFields flattens page content into editor fields ordered by page then field.
func PageFields(pc models.PageContent) []PageField {
	var out []PageField
	for _, page := range sortedKeys(pc) {
		for _, field := range sortedKeys(pc[page]) {
			v := pc[page][field]
			out = append(out, PageField{Page: page, Field: field, Value: v, Multiline: models.IsMultiline(v)})
		}
	}
	return out
}
