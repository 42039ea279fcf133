package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/medialog/medialog-server/internal/domain"
)

// itemKey builds the primary key for a catalog item. Prefixes come from
// the descriptor registry, so items of different categories never collide.
func (s *Store) itemKey(category domain.Category, itemID string) ([]byte, error) {
	d, ok := s.registry.Get(category, domain.RolePrimaryItem)
	if !ok {
		return nil, ErrInvalidInput.WithMessage(fmt.Sprintf("category %s has no catalog items", category))
	}
	return []byte(d.KeyPrefix + itemID), nil
}

// CreateMediaItem stores a new catalog item and indexes it for search.
func (s *Store) CreateMediaItem(ctx context.Context, item *domain.MediaItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := s.itemKey(item.Category, item.ID)
	if err != nil {
		return err
	}

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("checking item %s: %w", item.ID, err)
	}
	if exists {
		return ErrAlreadyExists.WithMessage(fmt.Sprintf("item %s already exists", item.ID))
	}

	if err := s.set(key, item); err != nil {
		return fmt.Errorf("storing item %s: %w", item.ID, err)
	}

	if s.searchIndexer != nil {
		if err := s.searchIndexer.IndexItem(ctx, item); err != nil && s.logger != nil {
			s.logger.Warn("failed to index item", "item_id", item.ID, "error", err)
		}
	}
	return nil
}

// UpdateMediaItem overwrites an existing catalog item.
func (s *Store) UpdateMediaItem(ctx context.Context, item *domain.MediaItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := s.itemKey(item.Category, item.ID)
	if err != nil {
		return err
	}

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("checking item %s: %w", item.ID, err)
	}
	if !exists {
		return ErrNotFound.WithMessage(fmt.Sprintf("item %s not found", item.ID))
	}

	if err := s.set(key, item); err != nil {
		return fmt.Errorf("storing item %s: %w", item.ID, err)
	}

	if s.searchIndexer != nil {
		if err := s.searchIndexer.IndexItem(ctx, item); err != nil && s.logger != nil {
			s.logger.Warn("failed to index item", "item_id", item.ID, "error", err)
		}
	}
	return nil
}

// GetMediaItem retrieves one catalog item.
func (s *Store) GetMediaItem(ctx context.Context, category domain.Category, itemID string) (*domain.MediaItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := s.itemKey(category, itemID)
	if err != nil {
		return nil, err
	}

	var item domain.MediaItem
	if err := s.get(key, &item); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound.WithMessage(fmt.Sprintf("item %s not found", itemID))
		}
		return nil, fmt.Errorf("getting item %s: %w", itemID, err)
	}
	return &item, nil
}

// ListMediaItems returns all catalog items in a category.
func (s *Store) ListMediaItems(ctx context.Context, category domain.Category) ([]*domain.MediaItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, ok := s.registry.Get(category, domain.RolePrimaryItem)
	if !ok {
		return nil, ErrInvalidInput.WithMessage(fmt.Sprintf("category %s has no catalog items", category))
	}

	var items []*domain.MediaItem
	err := scanPrefix(s, []byte(d.KeyPrefix), func(item *domain.MediaItem) {
		items = append(items, item)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// MediaItemsByID returns the items of a category keyed by ID, for
// time-rule resolution during recomputes.
func (s *Store) MediaItemsByID(ctx context.Context, category domain.Category) (map[string]*domain.MediaItem, error) {
	items, err := s.ListMediaItems(ctx, category)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.MediaItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID, nil
}

// DeleteMediaItem removes a catalog item and its search document.
// Idempotent: no error if the item does not exist.
func (s *Store) DeleteMediaItem(ctx context.Context, category domain.Category, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := s.itemKey(category, itemID)
	if err != nil {
		return err
	}

	if err := s.delete(key); err != nil {
		return fmt.Errorf("deleting item %s: %w", itemID, err)
	}

	if s.searchIndexer != nil {
		if err := s.searchIndexer.DeleteItem(ctx, itemID); err != nil && s.logger != nil {
			s.logger.Warn("failed to remove item from index", "item_id", itemID, "error", err)
		}
	}
	return nil
}
