package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/service"
)

func TestCategoryStats_ZeroRowForNewUser(t *testing.T) {
	env := setupTestEnv(t)

	result, err := env.stats.CategoryStats(context.Background(), "nobody", domain.CategoryAnime)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.TotalEntries)
	assert.Nil(t, result.Stats.AverageRating)
	assert.Equal(t, "episodes", result.SpecificUnit)
	assert.Empty(t, result.TopGenres)
}

func TestCategoryStats_GenreAndDecadeBreakdowns(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	seedUser(t, env, "u_1")
	seedItem(t, env, "i_1", domain.CategoryMovies, func(item *domain.MediaItem) {
		item.Genres = []string{"thriller", "crime"}
		item.ReleaseYear = 1995
	})
	seedItem(t, env, "i_2", domain.CategoryMovies, func(item *domain.MediaItem) {
		item.Genres = []string{"thriller"}
		item.ReleaseYear = 1999
	})

	for _, itemID := range []string{"i_1", "i_2"} {
		_, err := env.list.AddEntry(ctx, "u_1", domain.CategoryMovies, itemID, service.AddEntryParams{})
		require.NoError(t, err)
	}

	result, err := env.stats.CategoryStats(ctx, "u_1", domain.CategoryMovies)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.TotalEntries)

	require.NotEmpty(t, result.TopGenres)
	assert.Equal(t, "thriller", result.TopGenres[0].Genre)
	assert.Equal(t, 2, result.TopGenres[0].Count)

	assert.Equal(t, 2, result.ByDecade["1990s"])
}

func TestOverview_RollsUpAcrossCategories(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	seedUser(t, env, "u_1")
	seedItem(t, env, "i_1", domain.CategoryBooks, nil)
	seedItem(t, env, "i_2", domain.CategoryGames, nil)

	_, err := env.list.AddEntry(ctx, "u_1", domain.CategoryBooks, "i_1", service.AddEntryParams{
		Progress: 50,
		Favorite: true,
	})
	require.NoError(t, err)

	_, err = env.list.AddEntry(ctx, "u_1", domain.CategoryGames, "i_2", service.AddEntryParams{
		PlaytimeMin: 90,
	})
	require.NoError(t, err)

	overview, err := env.stats.Overview(ctx, "u_1")
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalEntries)
	assert.Equal(t, 1, overview.EntriesFavorite)
	assert.InDelta(t, 190, overview.TimeSpentMin, 1e-6) // 50 pages * 2 min + 90 min
	assert.Len(t, overview.Categories, len(domain.Categories()))
}
