package domain

import "strings"

// ListEntry is one user's tracking row for one media item. At most one
// entry exists per (user, item); the store enforces the unique pair.
type ListEntry struct {
	Syncable
	UserID   string   `json:"user_id"`
	ItemID   string   `json:"item_id"`
	Category Category `json:"category"`

	Status   Status   `json:"status"`
	Rating   *float64 `json:"rating,omitempty"`
	Favorite bool     `json:"favorite"`
	Comment  string   `json:"comment,omitempty"`

	// Redo counts rewatches/rereads beyond the first pass. Always zero for
	// categories without a redo concept.
	Redo int `json:"redo,omitempty"`

	// Progress counts consumed units in the category's specific unit
	// (episodes, pages, chapters). For movies it is 0 or 1.
	Progress int `json:"progress,omitempty"`

	// PlaytimeMin is accumulated playtime in minutes; games only.
	PlaytimeMin int `json:"playtime_min,omitempty"`
}

// HasComment reports whether the entry's comment is non-empty after
// trimming whitespace. An all-whitespace comment counts as absent.
func (e *ListEntry) HasComment() bool {
	return strings.TrimSpace(e.Comment) != ""
}

// NormalizeComment maps whitespace-only comments to the empty string so
// that "   " and "" compare equal everywhere comments are counted.
func NormalizeComment(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
