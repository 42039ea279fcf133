package domain

import "fmt"

// ListChange describes one logical mutation of a list entry as old/new
// value pairs. It is transient: built by the mutation handler, applied to
// the owning ListStats row, never persisted. One user action may set
// several sub-changes at once (completing a show changes status, progress,
// and time in a single change).
type ListChange struct {
	// EntryAdded and EntryRemoved mark entry creation and deletion. At
	// most one may be set; both require a matching Status sub-change
	// (nil→initial status on add, current status→nil on remove).
	EntryAdded   bool
	EntryRemoved bool

	Status   *StatusChange
	Rating   *RatingChange
	Favorite *FavoriteChange
	Comment  *CommentChange
	Redo     *RedoChange
	Specific *SpecificChange
	Time     *TimeChange
}

// StatusChange moves an entry between status buckets. A nil Old means the
// entry is new; a nil New means it is being removed.
type StatusChange struct {
	Old *Status
	New *Status
}

// RatingChange carries the old and new rating; nil means unrated.
type RatingChange struct {
	Old *float64
	New *float64
}

// FavoriteChange carries the old and new favorite flag.
type FavoriteChange struct {
	Old bool
	New bool
}

// CommentChange carries the raw old and new comment text. Whitespace-only
// values are normalized to empty before comparison.
type CommentChange struct {
	Old string
	New string
}

// RedoChange carries the old and new redo counter.
type RedoChange struct {
	Old int
	New int
}

// SpecificChange carries the old and new specific-progress value.
type SpecificChange struct {
	Old int
	New int
}

// TimeChange carries the old and new time contribution in minutes, already
// multiplied by the category's time rule by the caller.
type TimeChange struct {
	Old float64
	New float64
}

// Empty reports whether the change carries no sub-changes at all.
func (c *ListChange) Empty() bool {
	return !c.EntryAdded && !c.EntryRemoved &&
		c.Status == nil && c.Rating == nil && c.Favorite == nil &&
		c.Comment == nil && c.Redo == nil && c.Specific == nil && c.Time == nil
}

// Validate rejects malformed changes before any stats field is touched.
// The rules mirror what the engine can safely apply: adds and removes must
// carry a half-open status pair, plain status moves a closed one, and every
// status named must belong to the category.
func (c *ListChange) Validate(category Category) error {
	if c.Empty() {
		return fmt.Errorf("list change: no sub-changes set")
	}
	if c.EntryAdded && c.EntryRemoved {
		return fmt.Errorf("list change: added and removed are mutually exclusive")
	}

	switch {
	case c.EntryAdded:
		if c.Status == nil || c.Status.Old != nil || c.Status.New == nil {
			return fmt.Errorf("list change: add requires status nil→initial")
		}
	case c.EntryRemoved:
		if c.Status == nil || c.Status.Old == nil || c.Status.New != nil {
			return fmt.Errorf("list change: remove requires status current→nil")
		}
	case c.Status != nil:
		if c.Status.Old == nil || c.Status.New == nil {
			return fmt.Errorf("list change: status change requires both old and new")
		}
	}

	if c.Status != nil {
		if s := c.Status.Old; s != nil && !category.ValidStatus(*s) {
			return fmt.Errorf("list change: status %q not valid for %s", *s, category)
		}
		if s := c.Status.New; s != nil && !category.ValidStatus(*s) {
			return fmt.Errorf("list change: status %q not valid for %s", *s, category)
		}
	}

	return nil
}
