package stats

import (
	"time"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/registry"
)

// Recompute derives a stats row from scratch by full aggregation over the
// raw entries. This is the expensive path the incremental engine exists to
// avoid; the reconciliation job runs it out-of-band as ground truth.
// Items maps item IDs to catalog rows for time-rule resolution; entries
// whose item is missing contribute zero time under item-dependent rules.
func Recompute(
	userID string,
	category domain.Category,
	entries []*domain.ListEntry,
	items map[string]*domain.MediaItem,
	rule registry.TimeRule,
) *domain.ListStats {
	s := domain.NewListStats(userID, category)

	for _, e := range entries {
		s.TotalEntries++
		s.StatusCounts[e.Status]++

		if e.Rating != nil {
			s.EntriesRated++
			s.RatingSum += *e.Rating
		}
		if e.Favorite {
			s.EntriesFavorite++
		}
		if e.HasComment() {
			s.EntriesCommented++
		}
		if category.HasRedo() {
			s.TotalRedo += e.Redo
		}
		if category.HasSpecific() {
			s.TotalSpecific += e.Progress
		}

		s.TimeSpentMin += rule.Minutes(items[e.ItemID], e)
	}

	recalcAverage(s)
	s.UpdatedAt = time.Now()
	return s
}
