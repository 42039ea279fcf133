package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/medialog/medialog-server/internal/domain"
)

const statsPrefix = "stats:"

// maxTxnRetries bounds optimistic-concurrency retries before giving up
// with ErrConflict.
const maxTxnRetries = 5

func statsKey(category domain.Category, userID string) []byte {
	return []byte(statsPrefix + string(category) + ":" + userID)
}

// GetListStats retrieves the pre-aggregated stats row for one
// (user, category). Returns nil, nil if no row exists yet.
func (s *Store) GetListStats(ctx context.Context, category domain.Category, userID string) (*domain.ListStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var stats domain.ListStats
	err := s.get(statsKey(category, userID), &stats)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting list stats for %s/%s: %w", userID, category, err)
	}
	return &stats, nil
}

// AllListStats retrieves every stats row in one category.
func (s *Store) AllListStats(ctx context.Context, category domain.Category) ([]*domain.ListStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []*domain.ListStats
	prefix := []byte(statsPrefix + string(category) + ":")
	err := scanPrefix(s, prefix, func(row *domain.ListStats) {
		results = append(results, row)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SetListStats saves a complete stats row. The reconciliation job uses
// this to overwrite a drifted row with its recomputation.
func (s *Store) SetListStats(ctx context.Context, stats *domain.ListStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set(statsKey(stats.Category, stats.UserID), stats)
}

// ApplyListChange persists a list mutation and its stats delta in a
// single transaction: the entry write and the stats update commit or
// fail together. The apply callback does the delta arithmetic on the
// loaded row; a callback error aborts the transaction with nothing
// written. Concurrent writers to the same row are serialized by
// Badger's conflict detection, with bounded retries.
func (s *Store) ApplyListChange(
	ctx context.Context,
	entry *domain.ListEntry,
	change *domain.ListChange,
	apply func(*domain.ListStats) error,
) (*domain.ListStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entryKey, err := s.entryKey(entry.Category, entry.UserID, entry.ItemID)
	if err != nil {
		return nil, err
	}

	var result *domain.ListStats
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			key := statsKey(entry.Category, entry.UserID)
			stats := domain.NewListStats(entry.UserID, entry.Category)

			item, err := txn.Get(key)
			if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err == nil {
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, stats)
				}); err != nil {
					return err
				}
			}

			if change.EntryAdded {
				_, err := txn.Get(entryKey)
				if err == nil {
					return ErrAlreadyExists.WithMessage(
						fmt.Sprintf("item %s is already on the list", entry.ItemID))
				}
				if !errors.Is(err, badger.ErrKeyNotFound) {
					return err
				}
			}

			if err := apply(stats); err != nil {
				return err
			}

			if change.EntryRemoved {
				if err := txn.Delete(entryKey); err != nil {
					return err
				}
			} else {
				data, err := json.Marshal(entry)
				if err != nil {
					return err
				}
				if err := txn.Set(entryKey, data); err != nil {
					return err
				}
			}

			data, err := json.Marshal(stats)
			if err != nil {
				return err
			}
			if err := txn.Set(key, data); err != nil {
				return err
			}

			result = stats
			return nil
		})

		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if errors.Is(err, badger.ErrConflict) {
		return nil, ErrConflict.WithCause(err)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
