package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/medialog/medialog-server/internal/domain"
)

// entryPrefix returns the key prefix for one (category, user) list, e.g.
// "entry:anime:u_123:". An entry key appends the item ID, making the
// (user, item) pair unique per category by construction.
func (s *Store) entryPrefix(category domain.Category, userID string) ([]byte, error) {
	d, ok := s.registry.Get(category, domain.RoleListEntry)
	if !ok {
		return nil, ErrInvalidInput.WithMessage(fmt.Sprintf("category %s has no list entries", category))
	}
	return []byte(d.KeyPrefix + userID + ":"), nil
}

func (s *Store) entryKey(category domain.Category, userID, itemID string) ([]byte, error) {
	prefix, err := s.entryPrefix(category, userID)
	if err != nil {
		return nil, err
	}
	return append(prefix, itemID...), nil
}

// GetListEntry retrieves one list entry.
func (s *Store) GetListEntry(ctx context.Context, category domain.Category, userID, itemID string) (*domain.ListEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := s.entryKey(category, userID, itemID)
	if err != nil {
		return nil, err
	}

	var entry domain.ListEntry
	if err := s.get(key, &entry); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound.WithMessage(fmt.Sprintf("list entry for item %s not found", itemID))
		}
		return nil, fmt.Errorf("getting list entry %s/%s: %w", userID, itemID, err)
	}
	return &entry, nil
}

// SetListEntry saves a complete list entry without touching the stats
// row. Use for field updates that carry no stats contribution; mutations
// that do must go through ApplyListChange instead.
func (s *Store) SetListEntry(ctx context.Context, entry *domain.ListEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := s.entryKey(entry.Category, entry.UserID, entry.ItemID)
	if err != nil {
		return err
	}
	return s.set(key, entry)
}

// ListEntries returns all of a user's entries in one category.
func (s *Store) ListEntries(ctx context.Context, category domain.Category, userID string) ([]*domain.ListEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix, err := s.entryPrefix(category, userID)
	if err != nil {
		return nil, err
	}

	var entries []*domain.ListEntry
	err = scanPrefix(s, prefix, func(e *domain.ListEntry) {
		entries = append(entries, e)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListEntryUserIDs returns the distinct user IDs that have at least one
// entry in the category. The reconciliation job uses this to enumerate
// the stats rows it must verify.
func (s *Store) ListEntryUserIDs(ctx context.Context, category domain.Category) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, ok := s.registry.Get(category, domain.RoleListEntry)
	if !ok {
		return nil, ErrInvalidInput.WithMessage(fmt.Sprintf("category %s has no list entries", category))
	}
	prefix := []byte(d.KeyPrefix)

	seen := make(map[string]bool)
	var userIDs []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			// Key shape is <prefix><userID>:<itemID>.
			rest := string(it.Item().Key())[len(prefix):]
			userID, _, ok := strings.Cut(rest, ":")
			if !ok || seen[userID] {
				continue
			}
			seen[userID] = true
			userIDs = append(userIDs, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
