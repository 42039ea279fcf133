// Package service provides the business logic layer for lists, stats,
// the catalog, and reconciliation.
package service

import (
	"context"
	"log/slog"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/errors"
	"github.com/medialog/medialog-server/internal/registry"
	"github.com/medialog/medialog-server/internal/stats"
	"github.com/medialog/medialog-server/internal/store"
)

// ListService orchestrates list mutations. Every mutation is expressed
// as a ListChange and applied to the stats row in the same transaction
// that writes the entry.
type ListService struct {
	store    *store.Store
	engine   *stats.Engine
	registry *registry.Registry
	logger   *slog.Logger
}

// NewListService creates a new list service.
func NewListService(st *store.Store, reg *registry.Registry, logger *slog.Logger) *ListService {
	return &ListService{
		store:    st,
		engine:   stats.NewEngine(reg),
		registry: reg,
		logger:   logger,
	}
}

// AddEntryParams carries the optional initial state of a new entry.
type AddEntryParams struct {
	Status      *domain.Status
	Rating      *float64
	Favorite    bool
	Comment     string
	Progress    int
	PlaytimeMin int
}

// EntryPatch is a partial update to an existing entry. Nil fields are
// left unchanged. ClearRating removes the rating; it wins over Rating.
type EntryPatch struct {
	Status      *domain.Status
	Rating      *float64
	ClearRating bool
	Favorite    *bool
	Comment     *string
	Redo        *int
	Progress    *int
	PlaytimeMin *int
}

// AddEntry puts an item on the user's list. The item must exist in the
// catalog; the (user, item) pair is unique per category.
func (s *ListService) AddEntry(ctx context.Context, userID string, category domain.Category, itemID string, params AddEntryParams) (*domain.ListEntry, error) {
	if !category.Valid() {
		return nil, errors.Validationf("unknown category %q", category)
	}

	item, err := s.store.GetMediaItem(ctx, category, itemID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, mapStoreErr(err)
	}

	status := category.Statuses()[0]
	if params.Status != nil {
		status = *params.Status
	}

	entry := &domain.ListEntry{
		UserID:      userID,
		ItemID:      itemID,
		Category:    category,
		Status:      status,
		Rating:      params.Rating,
		Favorite:    params.Favorite,
		Comment:     params.Comment,
		Progress:    params.Progress,
		PlaytimeMin: params.PlaytimeMin,
	}
	entry.ID = userID + ":" + itemID
	entry.InitTimestamps()

	rule := s.registry.TimeRule(category)
	change := &domain.ListChange{
		EntryAdded: true,
		Status:     &domain.StatusChange{New: &entry.Status},
	}
	if entry.Rating != nil {
		change.Rating = &domain.RatingChange{New: entry.Rating}
	}
	if entry.Favorite {
		change.Favorite = &domain.FavoriteChange{Old: false, New: true}
	}
	if entry.HasComment() {
		change.Comment = &domain.CommentChange{Old: "", New: entry.Comment}
	}
	if entry.Progress != 0 && category.HasSpecific() {
		change.Specific = &domain.SpecificChange{Old: 0, New: entry.Progress}
	}
	if minutes := rule.Minutes(item, entry); minutes != 0 {
		change.Time = &domain.TimeChange{Old: 0, New: minutes}
	}

	if _, err := s.applyChange(ctx, entry, change); err != nil {
		return nil, err
	}

	s.logger.Info("list entry added",
		"user_id", userID, "category", category, "item_id", itemID, "status", status)
	return entry, nil
}

// UpdateEntry applies a partial update to an entry and folds the
// resulting deltas into the stats row.
func (s *ListService) UpdateEntry(ctx context.Context, userID string, category domain.Category, itemID string, patch EntryPatch) (*domain.ListEntry, error) {
	if !category.Valid() {
		return nil, errors.Validationf("unknown category %q", category)
	}

	old, err := s.store.GetListEntry(ctx, category, userID, itemID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	item, err := s.store.GetMediaItem(ctx, category, itemID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, mapStoreErr(err)
	}

	next := *old
	change := &domain.ListChange{}
	dirty := false

	if patch.Status != nil && *patch.Status != old.Status {
		dirty = true
		oldStatus := old.Status
		next.Status = *patch.Status
		change.Status = &domain.StatusChange{Old: &oldStatus, New: patch.Status}
	}
	if patch.ClearRating {
		if old.Rating != nil {
			dirty = true
			change.Rating = &domain.RatingChange{Old: old.Rating}
			next.Rating = nil
		}
	} else if patch.Rating != nil {
		dirty = true
		change.Rating = &domain.RatingChange{Old: old.Rating, New: patch.Rating}
		next.Rating = patch.Rating
	}
	if patch.Favorite != nil && *patch.Favorite != old.Favorite {
		dirty = true
		change.Favorite = &domain.FavoriteChange{Old: old.Favorite, New: *patch.Favorite}
		next.Favorite = *patch.Favorite
	}
	if patch.Comment != nil && *patch.Comment != old.Comment {
		dirty = true
		change.Comment = &domain.CommentChange{Old: old.Comment, New: *patch.Comment}
		next.Comment = *patch.Comment
	}
	if patch.Redo != nil && *patch.Redo != old.Redo {
		if *patch.Redo < 0 {
			return nil, errors.Validationf("redo count cannot be negative")
		}
		dirty = true
		change.Redo = &domain.RedoChange{Old: old.Redo, New: *patch.Redo}
		next.Redo = *patch.Redo
	}
	if patch.Progress != nil && *patch.Progress != old.Progress {
		if *patch.Progress < 0 {
			return nil, errors.Validationf("progress cannot be negative")
		}
		dirty = true
		next.Progress = *patch.Progress
		if category.HasSpecific() {
			change.Specific = &domain.SpecificChange{Old: old.Progress, New: *patch.Progress}
		}
	}
	if patch.PlaytimeMin != nil && *patch.PlaytimeMin != old.PlaytimeMin {
		if *patch.PlaytimeMin < 0 {
			return nil, errors.Validationf("playtime cannot be negative")
		}
		dirty = true
		next.PlaytimeMin = *patch.PlaytimeMin
	}

	rule := s.registry.TimeRule(category)
	oldMinutes := rule.Minutes(item, old)
	newMinutes := rule.Minutes(item, &next)
	if oldMinutes != newMinutes {
		change.Time = &domain.TimeChange{Old: oldMinutes, New: newMinutes}
	}

	if change.Empty() {
		if !dirty {
			return old, nil
		}
		// A field changed but nothing in the stats row did, e.g. progress
		// on a game or playtime outside games. Persist the entry alone.
		next.Touch()
		if err := s.store.SetListEntry(ctx, &next); err != nil {
			return nil, mapStoreErr(err)
		}
		s.logger.Info("list entry updated",
			"user_id", userID, "category", category, "item_id", itemID)
		return &next, nil
	}

	next.Touch()
	if _, err := s.applyChange(ctx, &next, change); err != nil {
		return nil, err
	}

	s.logger.Info("list entry updated",
		"user_id", userID, "category", category, "item_id", itemID)
	return &next, nil
}

// RemoveEntry takes an item off the user's list, reversing every
// contribution the entry made to the stats row.
func (s *ListService) RemoveEntry(ctx context.Context, userID string, category domain.Category, itemID string) error {
	if !category.Valid() {
		return errors.Validationf("unknown category %q", category)
	}

	entry, err := s.store.GetListEntry(ctx, category, userID, itemID)
	if err != nil {
		return mapStoreErr(err)
	}

	item, err := s.store.GetMediaItem(ctx, category, itemID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return mapStoreErr(err)
	}

	rule := s.registry.TimeRule(category)
	oldStatus := entry.Status

	change := &domain.ListChange{
		EntryRemoved: true,
		Status:       &domain.StatusChange{Old: &oldStatus},
	}
	if entry.Rating != nil {
		change.Rating = &domain.RatingChange{Old: entry.Rating}
	}
	if entry.Favorite {
		change.Favorite = &domain.FavoriteChange{Old: true, New: false}
	}
	if entry.HasComment() {
		change.Comment = &domain.CommentChange{Old: entry.Comment, New: ""}
	}
	if entry.Redo != 0 {
		change.Redo = &domain.RedoChange{Old: entry.Redo, New: 0}
	}
	if entry.Progress != 0 && category.HasSpecific() {
		change.Specific = &domain.SpecificChange{Old: entry.Progress, New: 0}
	}
	if minutes := rule.Minutes(item, entry); minutes != 0 {
		change.Time = &domain.TimeChange{Old: minutes, New: 0}
	}

	if _, err := s.applyChange(ctx, entry, change); err != nil {
		return err
	}

	s.logger.Info("list entry removed",
		"user_id", userID, "category", category, "item_id", itemID)
	return nil
}

// GetEntry returns one list entry.
func (s *ListService) GetEntry(ctx context.Context, userID string, category domain.Category, itemID string) (*domain.ListEntry, error) {
	if !category.Valid() {
		return nil, errors.Validationf("unknown category %q", category)
	}
	entry, err := s.store.GetListEntry(ctx, category, userID, itemID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return entry, nil
}

// ListEntries returns all of a user's entries in one category.
func (s *ListService) ListEntries(ctx context.Context, userID string, category domain.Category) ([]*domain.ListEntry, error) {
	if !category.Valid() {
		return nil, errors.Validationf("unknown category %q", category)
	}
	entries, err := s.store.ListEntries(ctx, category, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return entries, nil
}

// applyChange commits the entry write and the stats delta in one store
// transaction.
func (s *ListService) applyChange(ctx context.Context, entry *domain.ListEntry, change *domain.ListChange) (*domain.ListStats, error) {
	row, err := s.store.ApplyListChange(ctx, entry, change, func(row *domain.ListStats) error {
		return s.engine.Apply(row, change)
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return row, nil
}

// mapStoreErr converts storage sentinels to coded domain errors so the
// API layer can translate them uniformly.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return errors.NotFound("resource not found").WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return errors.AlreadyExists("resource already exists").WithCause(err)
	case errors.Is(err, store.ErrConflict):
		return errors.Conflict("concurrent modification, please retry").WithCause(err)
	case errors.Is(err, store.ErrInvalidInput):
		return errors.Validation("invalid input").WithCause(err)
	default:
		return errors.Wrap(err, errors.CodeInternal, "storage failure")
	}
}
