package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/registry"
)

func TestDiff_IdenticalRowsAreClean(t *testing.T) {
	a := domain.NewListStats("user-1", domain.CategoryAnime)
	b := domain.NewListStats("user-1", domain.CategoryAnime)

	assert.Empty(t, Diff(a, b, DefaultTolerance))
}

func TestDiff_ReportsEveryDriftedField(t *testing.T) {
	before := domain.NewListStats("user-1", domain.CategorySeries)
	after := domain.NewListStats("user-1", domain.CategorySeries)

	after.TotalEntries = 3
	after.StatusCounts[domain.StatusWatching] = 2
	after.StatusCounts[domain.StatusCompleted] = 1
	after.TimeSpentMin = 480

	ds := Diff(before, after, DefaultTolerance)
	fields := make(map[string]Discrepancy, len(ds))
	for _, d := range ds {
		fields[d.Field] = d
	}

	require.Len(t, ds, 4)
	assert.InDelta(t, 3, fields["total_entries"].Delta, 1e-9)
	assert.InDelta(t, 2, fields["status_counts.watching"].Delta, 1e-9)
	assert.InDelta(t, 1, fields["status_counts.completed"].Delta, 1e-9)
	assert.InDelta(t, 480, fields["time_spent_min"].Delta, 1e-9)
}

func TestDiff_ToleranceAbsorbsFloatResidue(t *testing.T) {
	before := domain.NewListStats("user-1", domain.CategoryMovies)
	after := domain.NewListStats("user-1", domain.CategoryMovies)
	before.TimeSpentMin = 100.0
	after.TimeSpentMin = 100.0 + 1e-9

	assert.Empty(t, Diff(before, after, DefaultTolerance))
	assert.Len(t, Diff(before, after, 1e-12), 1)
}

func TestDiff_NilAverageOnOneSideOnly(t *testing.T) {
	before := domain.NewListStats("user-1", domain.CategoryBooks)
	after := domain.NewListStats("user-1", domain.CategoryBooks)
	avg := 7.5
	after.AverageRating = &avg

	ds := Diff(before, after, DefaultTolerance)
	require.Len(t, ds, 1)
	assert.Equal(t, "average_rating", ds[0].Field)
}

// A long mutation sequence applied incrementally must land on exactly the
// row a from-scratch recomputation produces.
func TestRecompute_AgreesWithIncrementalEngine(t *testing.T) {
	reg := registry.New()
	e := NewEngine(reg)
	rule := reg.TimeRule(domain.CategoryAnime)

	item := &domain.MediaItem{Category: domain.CategoryAnime, RuntimeMin: 24, Units: 12}
	item.ID = "item-1"
	items := map[string]*domain.MediaItem{item.ID: item}

	maintained := domain.NewListStats("user-1", domain.CategoryAnime)

	// Add, progress to 5 episodes, rate, comment, then finish the show.
	require.NoError(t, e.Apply(maintained, addChange(domain.StatusWatching)))
	require.NoError(t, e.Apply(maintained, &domain.ListChange{
		Specific: &domain.SpecificChange{Old: 0, New: 5},
		Time:     &domain.TimeChange{Old: 0, New: 120},
	}))
	require.NoError(t, e.Apply(maintained, &domain.ListChange{
		Rating:  &domain.RatingChange{New: ratingPtr(8.0)},
		Comment: &domain.CommentChange{Old: "", New: "promising"},
	}))
	require.NoError(t, e.Apply(maintained, &domain.ListChange{
		Status:   &domain.StatusChange{Old: statusPtr(domain.StatusWatching), New: statusPtr(domain.StatusCompleted)},
		Specific: &domain.SpecificChange{Old: 5, New: 12},
		Time:     &domain.TimeChange{Old: 120, New: 288},
	}))

	entry := &domain.ListEntry{
		UserID:   "user-1",
		ItemID:   item.ID,
		Category: domain.CategoryAnime,
		Status:   domain.StatusCompleted,
		Rating:   ratingPtr(8.0),
		Comment:  "promising",
		Progress: 12,
	}
	recomputed := Recompute("user-1", domain.CategoryAnime, []*domain.ListEntry{entry}, items, rule)

	assert.Empty(t, Diff(maintained, recomputed, DefaultTolerance))
	assertHistogramConserved(t, maintained)
}

func TestRecompute_MissingItemContributesZeroTime(t *testing.T) {
	reg := registry.New()
	rule := reg.TimeRule(domain.CategorySeries)

	entry := &domain.ListEntry{
		UserID:   "user-1",
		ItemID:   "gone",
		Category: domain.CategorySeries,
		Status:   domain.StatusWatching,
		Progress: 4,
	}
	s := Recompute("user-1", domain.CategorySeries, []*domain.ListEntry{entry}, nil, rule)

	assert.Equal(t, 1, s.TotalEntries)
	assert.Zero(t, s.TimeSpentMin)
}
