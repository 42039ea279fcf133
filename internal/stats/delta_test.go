package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/errors"
	"github.com/medialog/medialog-server/internal/registry"
)

func newTestEngine() *Engine {
	return NewEngine(registry.New())
}

func statusPtr(s domain.Status) *domain.Status { return &s }
func ratingPtr(v float64) *float64             { return &v }

// addChange builds the change for a new entry in the given status.
func addChange(status domain.Status) *domain.ListChange {
	return &domain.ListChange{
		EntryAdded: true,
		Status:     &domain.StatusChange{New: statusPtr(status)},
	}
}

func TestApply_AddCompletedWithProgressAndTime(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategoryAnime)

	// Adding a finished 12-episode show at 24 min per episode.
	change := addChange(domain.StatusCompleted)
	change.Specific = &domain.SpecificChange{Old: 0, New: 12}
	change.Time = &domain.TimeChange{Old: 0, New: 288}

	require.NoError(t, e.Apply(s, change))

	assert.Equal(t, 1, s.TotalEntries)
	assert.Equal(t, 1, s.StatusCounts[domain.StatusCompleted])
	assert.Equal(t, 12, s.TotalSpecific)
	assert.InDelta(t, 288, s.TimeSpentMin, 1e-9)
}

func TestApply_StatusMoveKeepsHistogramConserved(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategorySeries)

	require.NoError(t, e.Apply(s, addChange(domain.StatusWatching)))
	require.NoError(t, e.Apply(s, addChange(domain.StatusPlanToDo)))

	require.NoError(t, e.Apply(s, &domain.ListChange{
		Status: &domain.StatusChange{
			Old: statusPtr(domain.StatusWatching),
			New: statusPtr(domain.StatusCompleted),
		},
	}))

	assert.Equal(t, 0, s.StatusCounts[domain.StatusWatching])
	assert.Equal(t, 1, s.StatusCounts[domain.StatusCompleted])
	assertHistogramConserved(t, s)
}

func TestApply_RatingNullToValue(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategoryMovies)
	require.NoError(t, e.Apply(s, addChange(domain.StatusCompleted)))

	require.NoError(t, e.Apply(s, &domain.ListChange{
		Rating: &domain.RatingChange{New: ratingPtr(8.5)},
	}))

	assert.Equal(t, 1, s.EntriesRated)
	assert.InDelta(t, 8.5, s.RatingSum, 1e-9)
	require.NotNil(t, s.AverageRating)
	assert.InDelta(t, 8.5, *s.AverageRating, 1e-9)
}

func TestApply_RatingValueToNullRestoresPriorAverage(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategoryMovies)
	require.NoError(t, e.Apply(s, addChange(domain.StatusCompleted)))
	require.NoError(t, e.Apply(s, addChange(domain.StatusCompleted)))

	require.NoError(t, e.Apply(s, &domain.ListChange{
		Rating: &domain.RatingChange{New: ratingPtr(6.0)},
	}))
	require.NoError(t, e.Apply(s, &domain.ListChange{
		Rating: &domain.RatingChange{New: ratingPtr(8.5)},
	}))
	require.NotNil(t, s.AverageRating)
	assert.InDelta(t, 7.25, *s.AverageRating, 1e-9)

	// Dropping the second rating restores the first-only average.
	require.NoError(t, e.Apply(s, &domain.ListChange{
		Rating: &domain.RatingChange{Old: ratingPtr(8.5)},
	}))
	require.NotNil(t, s.AverageRating)
	assert.InDelta(t, 6.0, *s.AverageRating, 1e-9)

	// Dropping the last rating leaves the average undefined, never a panic.
	require.NoError(t, e.Apply(s, &domain.ListChange{
		Rating: &domain.RatingChange{Old: ratingPtr(6.0)},
	}))
	assert.Nil(t, s.AverageRating)
	assert.Equal(t, 0, s.EntriesRated)
	assert.Zero(t, s.RatingSum)
}

func TestApply_RatingValueToValue(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategoryBooks)
	require.NoError(t, e.Apply(s, addChange(domain.StatusReading)))
	require.NoError(t, e.Apply(s, &domain.ListChange{
		Rating: &domain.RatingChange{New: ratingPtr(7.0)},
	}))

	require.NoError(t, e.Apply(s, &domain.ListChange{
		Rating: &domain.RatingChange{Old: ratingPtr(7.0), New: ratingPtr(9.0)},
	}))

	assert.Equal(t, 1, s.EntriesRated)
	assert.InDelta(t, 9.0, s.RatingSum, 1e-9)
}

func TestApply_RatingNullToNullIsNoop(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategoryBooks)
	require.NoError(t, e.Apply(s, addChange(domain.StatusReading)))

	require.NoError(t, e.Apply(s, &domain.ListChange{
		Rating: &domain.RatingChange{},
	}))

	assert.Equal(t, 0, s.EntriesRated)
	assert.Nil(t, s.AverageRating)
}

func TestApply_FavoriteToggle(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategoryGames)
	require.NoError(t, e.Apply(s, addChange(domain.StatusPlaying)))

	require.NoError(t, e.Apply(s, &domain.ListChange{
		Favorite: &domain.FavoriteChange{Old: false, New: true},
	}))
	assert.Equal(t, 1, s.EntriesFavorite)

	// Unchanged flag is a no-op.
	require.NoError(t, e.Apply(s, &domain.ListChange{
		Favorite: &domain.FavoriteChange{Old: true, New: true},
	}))
	assert.Equal(t, 1, s.EntriesFavorite)

	require.NoError(t, e.Apply(s, &domain.ListChange{
		Favorite: &domain.FavoriteChange{Old: true, New: false},
	}))
	assert.Equal(t, 0, s.EntriesFavorite)
}

func TestApply_CommentWhitespaceIsAbsent(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategorySeries)
	require.NoError(t, e.Apply(s, addChange(domain.StatusWatching)))

	require.NoError(t, e.Apply(s, &domain.ListChange{
		Comment: &domain.CommentChange{Old: "", New: "Great!"},
	}))
	assert.Equal(t, 1, s.EntriesCommented)

	// Whitespace-only counts as absent again.
	require.NoError(t, e.Apply(s, &domain.ListChange{
		Comment: &domain.CommentChange{Old: "Great!", New: "   "},
	}))
	assert.Equal(t, 0, s.EntriesCommented)

	// Whitespace to whitespace is a no-op.
	require.NoError(t, e.Apply(s, &domain.ListChange{
		Comment: &domain.CommentChange{Old: "   ", New: "\t"},
	}))
	assert.Equal(t, 0, s.EntriesCommented)
}

func TestApply_RedoSkippedForGames(t *testing.T) {
	e := newTestEngine()

	games := domain.NewListStats("user-1", domain.CategoryGames)
	require.NoError(t, e.Apply(games, addChange(domain.StatusPlaying)))
	require.NoError(t, e.Apply(games, &domain.ListChange{
		Redo: &domain.RedoChange{Old: 0, New: 3},
	}))
	assert.Equal(t, 0, games.TotalRedo)

	movies := domain.NewListStats("user-1", domain.CategoryMovies)
	require.NoError(t, e.Apply(movies, addChange(domain.StatusCompleted)))
	require.NoError(t, e.Apply(movies, &domain.ListChange{
		Redo: &domain.RedoChange{Old: 0, New: 3},
	}))
	assert.Equal(t, 3, movies.TotalRedo)
}

func TestApply_SpecificSkippedForMovies(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategoryMovies)
	require.NoError(t, e.Apply(s, addChange(domain.StatusCompleted)))

	require.NoError(t, e.Apply(s, &domain.ListChange{
		Specific: &domain.SpecificChange{Old: 0, New: 1},
	}))
	assert.Equal(t, 0, s.TotalSpecific)
}

func TestApply_RemoveReversesEverything(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategorySeries)

	// Build up an entry: watching, rated, favorite, commented, redo 2.
	add := addChange(domain.StatusWatching)
	add.Specific = &domain.SpecificChange{Old: 0, New: 8}
	add.Time = &domain.TimeChange{Old: 0, New: 320}
	require.NoError(t, e.Apply(s, add))
	require.NoError(t, e.Apply(s, &domain.ListChange{
		Rating:   &domain.RatingChange{New: ratingPtr(7.5)},
		Favorite: &domain.FavoriteChange{Old: false, New: true},
		Comment:  &domain.CommentChange{Old: "", New: "solid"},
		Redo:     &domain.RedoChange{Old: 0, New: 2},
	}))

	// Removal carries the inverse of every live contribution.
	remove := &domain.ListChange{
		EntryRemoved: true,
		Status:       &domain.StatusChange{Old: statusPtr(domain.StatusWatching)},
		Rating:       &domain.RatingChange{Old: ratingPtr(7.5)},
		Favorite:     &domain.FavoriteChange{Old: true, New: false},
		Comment:      &domain.CommentChange{Old: "solid", New: ""},
		Redo:         &domain.RedoChange{Old: 2, New: 0},
		Specific:     &domain.SpecificChange{Old: 8, New: 0},
		Time:         &domain.TimeChange{Old: 320, New: 0},
	}
	require.NoError(t, e.Apply(s, remove))

	fresh := domain.NewListStats("user-1", domain.CategorySeries)
	assert.Equal(t, fresh.TotalEntries, s.TotalEntries)
	assert.Equal(t, fresh.StatusCounts, s.StatusCounts)
	assert.Equal(t, fresh.EntriesRated, s.EntriesRated)
	assert.Nil(t, s.AverageRating)
	assert.Equal(t, fresh.EntriesFavorite, s.EntriesFavorite)
	assert.Equal(t, fresh.EntriesCommented, s.EntriesCommented)
	assert.Equal(t, fresh.TotalRedo, s.TotalRedo)
	assert.Equal(t, fresh.TotalSpecific, s.TotalSpecific)
	assert.InDelta(t, 0, s.TimeSpentMin, 1e-9)
}

func TestApply_MalformedChangeTouchesNothing(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.CategoryAnime)
	require.NoError(t, e.Apply(s, addChange(domain.StatusWatching)))
	snapshot := *s

	cases := map[string]*domain.ListChange{
		"empty":                 {},
		"add without status":    {EntryAdded: true},
		"add with closed pair":  {EntryAdded: true, Status: &domain.StatusChange{Old: statusPtr(domain.StatusWatching), New: statusPtr(domain.StatusCompleted)}},
		"remove without status": {EntryRemoved: true},
		"add and remove":        {EntryAdded: true, EntryRemoved: true, Status: &domain.StatusChange{New: statusPtr(domain.StatusWatching)}},
		"half-open move":        {Status: &domain.StatusChange{Old: statusPtr(domain.StatusWatching)}},
		"foreign status":        {Status: &domain.StatusChange{Old: statusPtr(domain.StatusWatching), New: statusPtr(domain.StatusReading)}},
	}

	for name, change := range cases {
		err := e.Apply(s, change)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, errors.ErrValidation), name)
		assert.Equal(t, snapshot.TotalEntries, s.TotalEntries, name)
		assert.Equal(t, snapshot.StatusCounts, s.StatusCounts, name)
	}
}

// assertHistogramConserved checks Σ status_counts == total_entries.
func assertHistogramConserved(t *testing.T, s *domain.ListStats) {
	t.Helper()
	sum := 0
	for _, n := range s.StatusCounts {
		sum += n
	}
	assert.Equal(t, s.TotalEntries, sum, "status histogram must sum to total entries")
}

func TestApply_UnregisteredCategoryIsConfigError(t *testing.T) {
	e := newTestEngine()
	s := domain.NewListStats("user-1", domain.Category("podcasts"))

	err := e.Apply(s, &domain.ListChange{Redo: &domain.RedoChange{Old: 0, New: 1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
	assert.Equal(t, 0, s.TotalRedo)
}
