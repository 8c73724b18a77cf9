package academy

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
	"github.com/colorbulb/nexteliteweb2/pkg/seeddata"
)

// Seed writes the bundled dataset into the document store.
func (a *App) Seed(ctx context.Context, cmd *SeedCommand) error {
	res, err := content.Seed(ctx, a.client, seeddata.Default(), cmd.Force)
	if err != nil {
		return err
	}
	if !res.Seeded {
		a.log.Info().Int("courses", res.ExistingCourses).Msg("store already has content, nothing seeded (use -force to overwrite)")
		return nil
	}
	a.log.Info().Bool("force", cmd.Force).Int("replaced_courses", res.ExistingCourses).Msg("bundled content seeded")
	return nil
}

// Export writes a snapshot read directly from the document store.
func (a *App) Export(ctx context.Context, cmd *ExportCommand) (err error) {
	snapshot := content.ExportFrom(ctx, a.client, time.Now())

	var w io.Writer = os.Stdout
	if cmd.Out != "-" {
		f, err := os.Create(cmd.Out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", cmd.Out, err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if err := snapshot.Encode(w, cmd.Format); err != nil {
		return err
	}
	a.log.Info().Str("out", cmd.Out).Str("format", string(cmd.Format)).
		Int("courses", len(snapshot.Courses)).Int("leads", len(snapshot.Leads)).
		Msg("export written")
	return nil
}

// Mirror copies every collection from the configured backend to cmd.To.
func (a *App) Mirror(ctx context.Context, cmd *MirrorCommand) error {
	dst, err := openBackend(ctx, a.config, cmd.To, a.log)
	if err != nil {
		return err
	}
	defer dst.Close(ctx)

	stats, err := docstore.Copy(ctx, a.backend, dst, models.AllCollections())
	for _, coll := range models.AllCollections() {
		if n, ok := stats[coll]; ok {
			a.log.Info().Str("collection", coll.String()).Int("documents", n).Msg("collection mirrored")
		}
	}
	return err
}
