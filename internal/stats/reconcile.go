package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/medialog/medialog-server/internal/domain"
)

// DefaultTolerance absorbs floating-point rounding when comparing the
// incrementally maintained row against the recomputed one.
const DefaultTolerance = 1e-6

// Discrepancy is one field that drifted between the maintained stats row
// and its from-scratch recomputation.
type Discrepancy struct {
	UserID string  `json:"user_id"`
	Field  string  `json:"field"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Delta  float64 `json:"delta"`
}

// Report is the outcome of one reconciliation pass over a category.
type Report struct {
	RunID         string          `json:"run_id"`
	Category      domain.Category `json:"category"`
	StartedAt     time.Time       `json:"started_at"`
	FinishedAt    time.Time       `json:"finished_at"`
	UsersChecked  int             `json:"users_checked"`
	Discrepancies []Discrepancy   `json:"discrepancies,omitempty"`
}

// Clean reports whether the pass found no drift.
func (r *Report) Clean() bool {
	return len(r.Discrepancies) == 0
}

// Diff compares a maintained stats row against its recomputation and
// returns one discrepancy per drifted field. Fields within tolerance are
// equal; a nil average on one side only is always a discrepancy.
func Diff(before, after *domain.ListStats, tolerance float64) []Discrepancy {
	var out []Discrepancy

	add := func(field string, b, a float64) {
		if math.Abs(a-b) <= tolerance {
			return
		}
		out = append(out, Discrepancy{
			UserID: after.UserID,
			Field:  field,
			Before: b,
			After:  a,
			Delta:  a - b,
		})
	}

	add("total_entries", float64(before.TotalEntries), float64(after.TotalEntries))
	for _, status := range after.Category.Statuses() {
		add(fmt.Sprintf("status_counts.%s", status),
			float64(before.StatusCounts[status]), float64(after.StatusCounts[status]))
	}
	add("entries_rated", float64(before.EntriesRated), float64(after.EntriesRated))
	add("rating_sum", before.RatingSum, after.RatingSum)
	add("entries_favorite", float64(before.EntriesFavorite), float64(after.EntriesFavorite))
	add("entries_commented", float64(before.EntriesCommented), float64(after.EntriesCommented))
	add("total_redo", float64(before.TotalRedo), float64(after.TotalRedo))
	add("total_specific", float64(before.TotalSpecific), float64(after.TotalSpecific))
	add("time_spent_min", before.TimeSpentMin, after.TimeSpentMin)

	switch {
	case before.AverageRating == nil && after.AverageRating == nil:
		// Both undefined, nothing to compare.
	case before.AverageRating == nil || after.AverageRating == nil:
		out = append(out, Discrepancy{
			UserID: after.UserID,
			Field:  "average_rating",
			Before: floatOrNaN(before.AverageRating),
			After:  floatOrNaN(after.AverageRating),
		})
	default:
		add("average_rating", *before.AverageRating, *after.AverageRating)
	}

	return out
}

func floatOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
