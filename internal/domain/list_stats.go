package domain

import "time"

// ListStats is the per-(user, category) summary row. It is maintained
// incrementally by the stats engine on every list mutation and re-derived
// from raw entries by the reconciliation job. Mutate it only through those
// two paths; everything else treats it as read-only.
type ListStats struct {
	UserID   string   `json:"user_id"`
	Category Category `json:"category"`

	TotalEntries int            `json:"total_entries"`
	StatusCounts map[Status]int `json:"status_counts"`

	EntriesRated  int      `json:"entries_rated"`
	RatingSum     float64  `json:"rating_sum"`
	AverageRating *float64 `json:"average_rating,omitempty"`

	EntriesFavorite  int `json:"entries_favorite"`
	EntriesCommented int `json:"entries_commented"`
	TotalRedo        int `json:"total_redo"`

	// TotalSpecific accumulates the category's progress unit (episodes
	// watched, pages read). Meaningless for movies and games.
	TotalSpecific int `json:"total_specific,omitempty"`

	// TimeSpentMin sums progress × time multiplier across entries.
	TimeSpentMin float64 `json:"time_spent_min"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewListStats returns a zeroed stats row with every valid status bucket
// present, so Σ status_counts == total_entries holds from the start.
func NewListStats(userID string, category Category) *ListStats {
	counts := make(map[Status]int, len(category.Statuses()))
	for _, s := range category.Statuses() {
		counts[s] = 0
	}
	return &ListStats{
		UserID:       userID,
		Category:     category,
		StatusCounts: counts,
		UpdatedAt:    time.Now(),
	}
}
