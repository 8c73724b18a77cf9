package announce

import (
	"context"
	"math/rand/v2"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// Selector chooses one enabled announcement per page load.
type Selector struct {
	// Intn returns a number in [0, n). Nil uses math/rand.
	Intn func(n int) int
}

func (s Selector) intn(n int) int {
	if s.Intn != nil {
		return s.Intn(n)
	}
	return rand.IntN(n)
}

// Pick draws one enabled announcement uniformly at random. It reports false
// when there is none, or when the drawn one is the announcement the visitor
// dismissed last.
func (s Selector) Pick(ctx context.Context, anns []models.Announcement, storage Storage) (models.Announcement, bool, error) {
	enabled := make([]models.Announcement, 0, len(anns))
	for _, a := range anns {
		if !a.Disabled {
			enabled = append(enabled, a)
		}
	}
	if len(enabled) == 0 {
		return models.Announcement{}, false, nil
	}

	chosen := enabled[s.intn(len(enabled))]
	dismissed, err := storage.Get(ctx, DismissedKey)
	if err != nil {
		return models.Announcement{}, false, err
	}
	if dismissed == chosen.ID {
		return models.Announcement{}, false, nil
	}
	return chosen, true, nil
}

// Dismiss records id as dismissed, replacing any earlier dismissal.
func (s Selector) Dismiss(ctx context.Context, storage Storage, id string) error {
	return storage.Set(ctx, DismissedKey, id)
}
