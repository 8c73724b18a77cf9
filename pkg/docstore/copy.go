package docstore

import (
	"context"
	"fmt"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// CopyStats reports how many documents Copy wrote per collection.
type CopyStats map[models.Collection]int

// Copy mirrors each collection of src into dst, overwriting documents with the
// same id. Documents present only in dst are left untouched.
func Copy(ctx context.Context, src, dst Backend, colls []models.Collection) (CopyStats, error) {
	stats := make(CopyStats, len(colls))
	for _, coll := range colls {
		docs, err := src.List(ctx, coll)
		if err != nil {
			return stats, fmt.Errorf("failed to read %s from source: %w", coll, err)
		}
		for _, doc := range docs {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if err := dst.Put(ctx, coll, doc.ID, doc.Fields); err != nil {
				return stats, fmt.Errorf("failed to write %s/%s to destination: %w", coll, doc.ID, err)
			}
			stats[coll]++
		}
	}
	return stats, nil
}
