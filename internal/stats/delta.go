// Package stats maintains per-(user, category) list summaries: the engine
// applies incremental deltas on every mutation, and the recompute/diff
// half re-derives summaries from raw entries so drift can be reported.
package stats

import (
	"time"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/errors"
	"github.com/medialog/medialog-server/internal/registry"
)

// Engine applies list changes to stats rows with O(1) arithmetic. It never
// re-reads the raw entry set; the reconciliation job is the safety net for
// the invariants this maintains.
type Engine struct {
	registry *registry.Registry
}

// NewEngine creates an engine backed by the given registry.
func NewEngine(reg *registry.Registry) *Engine {
	return &Engine{registry: reg}
}

// Apply applies one logical change to the stats row. The change is
// validated before any field is touched: a malformed change leaves the row
// untouched and returns a validation error, and a row for a category the
// registry does not know is a configuration error. Valid changes never
// fail.
//
// The caller is responsible for persisting the row atomically; Apply only
// does the arithmetic.
func (e *Engine) Apply(s *domain.ListStats, change *domain.ListChange) error {
	spec, ok := e.registry.Spec(s.Category)
	if !ok {
		return errors.Configurationf("no category registration for %q", s.Category)
	}
	if err := change.Validate(s.Category); err != nil {
		return errors.Wrap(err, errors.CodeValidation, "invalid list change")
	}
	if s.StatusCounts == nil {
		s.StatusCounts = make(map[domain.Status]int)
	}

	if change.EntryAdded {
		s.TotalEntries++
	}
	if change.EntryRemoved {
		s.TotalEntries--
	}

	// Status buckets move together with the entry count: a nil old side
	// means the entry is new, a nil new side means it is leaving.
	if sc := change.Status; sc != nil {
		if sc.Old != nil {
			s.StatusCounts[*sc.Old]--
		}
		if sc.New != nil {
			s.StatusCounts[*sc.New]++
		}
	}

	if rc := change.Rating; rc != nil {
		switch {
		case rc.Old == nil && rc.New != nil:
			s.EntriesRated++
			s.RatingSum += *rc.New
		case rc.Old != nil && rc.New == nil:
			s.EntriesRated--
			s.RatingSum -= *rc.Old
		case rc.Old != nil && rc.New != nil:
			s.RatingSum += *rc.New - *rc.Old
		}
		recalcAverage(s)
	}

	if fc := change.Favorite; fc != nil && fc.Old != fc.New {
		if fc.New {
			s.EntriesFavorite++
		} else {
			s.EntriesFavorite--
		}
	}

	if cc := change.Comment; cc != nil {
		oldSet := domain.NormalizeComment(cc.Old) != ""
		newSet := domain.NormalizeComment(cc.New) != ""
		switch {
		case !oldSet && newSet:
			s.EntriesCommented++
		case oldSet && !newSet:
			s.EntriesCommented--
		}
	}

	if rc := change.Redo; rc != nil && spec.HasRedo {
		s.TotalRedo += rc.New - rc.Old
	}

	if sc := change.Specific; sc != nil && spec.HasSpecific() {
		s.TotalSpecific += sc.New - sc.Old
	}

	if tc := change.Time; tc != nil {
		s.TimeSpentMin += tc.New - tc.Old
	}

	s.UpdatedAt = time.Now()
	return nil
}

// recalcAverage rederives the average from count and sum. When the last
// rating goes away the sum is reset too, so float residue cannot leak into
// later averages.
func recalcAverage(s *domain.ListStats) {
	if s.EntriesRated <= 0 {
		s.RatingSum = 0
		s.AverageRating = nil
		return
	}
	avg := s.RatingSum / float64(s.EntriesRated)
	s.AverageRating = &avg
}
