package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/registry"
	"github.com/medialog/medialog-server/internal/stats"
	"github.com/medialog/medialog-server/internal/store"
)

// ReconcileService re-derives stats rows from raw entries, overwrites
// the maintained rows, and reports any drift the incremental engine let
// in. Passes are idempotent: a clean store reconciles to itself.
type ReconcileService struct {
	store     *store.Store
	registry  *registry.Registry
	logger    *slog.Logger
	tolerance float64
}

// NewReconcileService creates a new reconciliation service. A tolerance
// of zero (or less) falls back to stats.DefaultTolerance.
func NewReconcileService(st *store.Store, reg *registry.Registry, tolerance float64, logger *slog.Logger) *ReconcileService {
	if tolerance <= 0 {
		tolerance = stats.DefaultTolerance
	}
	return &ReconcileService{
		store:     st,
		registry:  reg,
		logger:    logger,
		tolerance: tolerance,
	}
}

// RunCategory reconciles every user's stats row in one category. Drift
// is corrected and reported, never treated as a failure; a user whose
// rows cannot be read is skipped so the pass completes for the rest.
func (s *ReconcileService) RunCategory(ctx context.Context, category domain.Category) (*stats.Report, error) {
	report := &stats.Report{
		RunID:     uuid.NewString(),
		Category:  category,
		StartedAt: time.Now(),
	}

	userIDs, err := s.store.ListEntryUserIDs(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("listing users for %s: %w", category, err)
	}

	items, err := s.store.MediaItemsByID(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("loading catalog for %s: %w", category, err)
	}
	rule := s.registry.TimeRule(category)

	// Users with a stats row but no remaining entries still need their
	// row reset to zero.
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		seen[id] = true
	}
	existing, err := s.store.AllListStats(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("listing stats rows for %s: %w", category, err)
	}
	for _, row := range existing {
		if !seen[row.UserID] {
			seen[row.UserID] = true
			userIDs = append(userIDs, row.UserID)
		}
	}

	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := s.store.ListEntries(ctx, category, userID)
		if err != nil {
			s.logger.Warn("reconcile: failed to load entries, skipping user",
				"user_id", userID, "category", category, "error", err)
			continue
		}

		before, err := s.store.GetListStats(ctx, category, userID)
		if err != nil {
			s.logger.Warn("reconcile: failed to load stats row, skipping user",
				"user_id", userID, "category", category, "error", err)
			continue
		}
		if before == nil {
			before = domain.NewListStats(userID, category)
		}

		after := stats.Recompute(userID, category, entries, items, rule)

		if err := s.store.SetListStats(ctx, after); err != nil {
			s.logger.Warn("reconcile: failed to overwrite stats row",
				"user_id", userID, "category", category, "error", err)
			continue
		}

		report.UsersChecked++
		report.Discrepancies = append(report.Discrepancies, stats.Diff(before, after, s.tolerance)...)
	}

	report.FinishedAt = time.Now()

	if report.Clean() {
		s.logger.Info("reconciliation pass clean",
			"run_id", report.RunID, "category", category, "users", report.UsersChecked)
	} else {
		s.logger.Warn("reconciliation pass found drift",
			"run_id", report.RunID, "category", category,
			"users", report.UsersChecked, "discrepancies", len(report.Discrepancies))
	}
	return report, nil
}

// RunAll reconciles every category and returns the per-category reports.
func (s *ReconcileService) RunAll(ctx context.Context) ([]*stats.Report, error) {
	reports := make([]*stats.Report, 0, len(domain.Categories()))
	for _, category := range domain.Categories() {
		report, err := s.RunCategory(ctx, category)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
