package service

import (
	"context"
	"log/slog"
	"slices"
	"strconv"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/registry"
	"github.com/medialog/medialog-server/internal/store"
)

// StatsService is the read side over the maintained stats rows, plus ad
// hoc group-bys over raw entries for breakdowns the rows don't carry.
type StatsService struct {
	store    *store.Store
	registry *registry.Registry
	logger   *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(st *store.Store, reg *registry.Registry, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:    st,
		registry: reg,
		logger:   logger,
	}
}

// GenreCount is one bucket of the top-genre breakdown.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// CategoryStats is the per-category read model: the maintained row plus
// breakdowns grouped from raw entries and catalog items.
type CategoryStats struct {
	Stats        *domain.ListStats `json:"stats"`
	SpecificUnit string            `json:"specific_unit,omitempty"`
	TopGenres    []GenreCount      `json:"top_genres,omitempty"`
	ByDecade     map[string]int    `json:"by_decade,omitempty"`
}

// Overview aggregates the maintained rows across every category.
type Overview struct {
	TotalEntries    int                                   `json:"total_entries"`
	TimeSpentMin    float64                               `json:"time_spent_min"`
	EntriesFavorite int                                   `json:"entries_favorite"`
	Categories      map[domain.Category]*domain.ListStats `json:"categories"`
}

const topGenreLimit = 10

// CategoryStats returns the stats object for one (user, category). A
// user with no entries gets a zero-valued row, not an error.
func (s *StatsService) CategoryStats(ctx context.Context, userID string, category domain.Category) (*CategoryStats, error) {
	if !category.Valid() {
		return nil, mapStoreErr(store.ErrInvalidInput.WithMessage("unknown category " + string(category)))
	}

	row, err := s.store.GetListStats(ctx, category, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if row == nil {
		row = domain.NewListStats(userID, category)
	}

	result := &CategoryStats{
		Stats:        row,
		SpecificUnit: category.SpecificUnit(),
	}

	entries, err := s.store.ListEntries(ctx, category, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if len(entries) == 0 {
		return result, nil
	}

	items, err := s.store.MediaItemsByID(ctx, category)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	genreCounts := make(map[string]int)
	decades := make(map[string]int)
	for _, e := range entries {
		item, ok := items[e.ItemID]
		if !ok {
			continue
		}
		for _, g := range item.Genres {
			genreCounts[g]++
		}
		if item.ReleaseYear > 0 {
			decade := strconv.Itoa(item.ReleaseYear/10*10) + "s"
			decades[decade]++
		}
	}

	result.TopGenres = topGenres(genreCounts, topGenreLimit)
	if len(decades) > 0 {
		result.ByDecade = decades
	}
	return result, nil
}

// Overview returns the cross-category rollup for one user.
func (s *StatsService) Overview(ctx context.Context, userID string) (*Overview, error) {
	overview := &Overview{
		Categories: make(map[domain.Category]*domain.ListStats, len(domain.Categories())),
	}

	for _, category := range domain.Categories() {
		row, err := s.store.GetListStats(ctx, category, userID)
		if err != nil {
			return nil, mapStoreErr(err)
		}
		if row == nil {
			row = domain.NewListStats(userID, category)
		}
		overview.Categories[category] = row
		overview.TotalEntries += row.TotalEntries
		overview.TimeSpentMin += row.TimeSpentMin
		overview.EntriesFavorite += row.EntriesFavorite
	}
	return overview, nil
}

// topGenres sorts the genre buckets by count (ties by name) and keeps
// the first limit entries.
func topGenres(counts map[string]int, limit int) []GenreCount {
	if len(counts) == 0 {
		return nil
	}

	out := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		out = append(out, GenreCount{Genre: genre, Count: count})
	}
	slices.SortFunc(out, func(a, b GenreCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if a.Genre < b.Genre {
			return -1
		}
		return 1
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
