package content

import (
	"context"
	"fmt"

	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
	"github.com/colorbulb/nexteliteweb2/pkg/seeddata"
)

// SeedResult reports what Seed did.
type SeedResult struct {
	Seeded          bool
	ExistingCourses int
}

// Seed writes the dataset into the store. Without force it does nothing when
// the courses collection already has records, so edits made in the store are
// never overwritten. With force every seeded collection and singleton is
// replaced.
func Seed(ctx context.Context, client *docstore.Client, dataset seeddata.Dataset, force bool) (SeedResult, error) {
	existing, err := client.Backend().List(ctx, models.CollectionCourses)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to check existing courses: %w", err)
	}
	res := SeedResult{ExistingCourses: len(existing)}
	if len(existing) > 0 && !force {
		return res, nil
	}
	if err := writeDataset(ctx, client, dataset); err != nil {
		return res, err
	}
	res.Seeded = true
	return res, nil
}

func writeDataset(ctx context.Context, client *docstore.Client, d seeddata.Dataset) error {
	if err := docstore.Replace(ctx, client, models.CollectionCourses, d.Courses); err != nil {
		return err
	}
	if err := docstore.Replace(ctx, client, models.CollectionBlogPosts, d.BlogPosts); err != nil {
		return err
	}
	if err := docstore.Replace(ctx, client, models.CollectionTeam, d.Team); err != nil {
		return err
	}
	if err := docstore.Replace(ctx, client, models.CollectionTestimonials, d.Testimonials); err != nil {
		return err
	}
	if err := docstore.Replace(ctx, client, models.CollectionSocialFeed, d.SocialFeed); err != nil {
		return err
	}
	if err := docstore.SetValue(ctx, client, models.CollectionSettings, d.Settings); err != nil {
		return err
	}
	return docstore.SetValue(ctx, client, models.CollectionPageContent, d.PageContent)
}
