package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/errors"
	"github.com/medialog/medialog-server/internal/stats"
)

func (s *Server) registerReconcileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "reconcileCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/reconcile/{category}",
		Summary:     "Reconcile category",
		Description: "Recomputes every stats row in one category and reports drift",
		Tags:        []string{"Admin"},
	}, s.handleReconcileCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "reconcileAll",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/reconcile",
		Summary:     "Reconcile all categories",
		Description: "Runs a reconciliation pass over every category",
		Tags:        []string{"Admin"},
	}, s.handleReconcileAll)
}

// === DTOs ===

// ReconcileCategoryInput contains parameters for a single-category pass.
type ReconcileCategoryInput struct {
	Category string `path:"category" doc:"Media category"`
}

// ReconcileReportOutput wraps one reconciliation report for Huma.
type ReconcileReportOutput struct {
	Body stats.Report
}

// ReconcileAllResponse contains the per-category reports of a full pass.
type ReconcileAllResponse struct {
	Reports []*stats.Report `json:"reports" doc:"Per-category reconciliation reports"`
}

// ReconcileAllOutput wraps the full-pass response for Huma.
type ReconcileAllOutput struct {
	Body ReconcileAllResponse
}

// === Handlers ===

func (s *Server) handleReconcileCategory(ctx context.Context, input *ReconcileCategoryInput) (*ReconcileReportOutput, error) {
	category := domain.Category(input.Category)
	if !category.Valid() {
		return nil, errors.Validationf("unknown category %q", input.Category)
	}

	report, err := s.services.Reconcile.RunCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	return &ReconcileReportOutput{Body: *report}, nil
}

func (s *Server) handleReconcileAll(ctx context.Context, _ *struct{}) (*ReconcileAllOutput, error) {
	reports, err := s.services.Reconcile.RunAll(ctx)
	if err != nil {
		return nil, err
	}

	return &ReconcileAllOutput{Body: ReconcileAllResponse{Reports: reports}}, nil
}
