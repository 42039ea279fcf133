package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/service"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCategoryStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userID}/stats/{category}",
		Summary:     "Get category stats",
		Description: "Returns the maintained stats row plus genre and decade breakdowns for one category",
		Tags:        []string{"Stats"},
	}, s.handleGetCategoryStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStatsOverview",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userID}/stats",
		Summary:     "Get stats overview",
		Description: "Returns the cross-category stats rollup for one user",
		Tags:        []string{"Stats"},
	}, s.handleGetStatsOverview)
}

// === DTOs ===

// CategoryStatsInput contains parameters for fetching category stats.
type CategoryStatsInput struct {
	UserID   string `path:"userID" doc:"User ID"`
	Category string `path:"category" doc:"Media category"`
}

// CategoryStatsOutput wraps the category stats for Huma.
type CategoryStatsOutput struct {
	Body service.CategoryStats
}

// StatsOverviewInput contains parameters for fetching the overview.
type StatsOverviewInput struct {
	UserID string `path:"userID" doc:"User ID"`
}

// StatsOverviewOutput wraps the overview for Huma.
type StatsOverviewOutput struct {
	Body service.Overview
}

// === Handlers ===

func (s *Server) handleGetCategoryStats(ctx context.Context, input *CategoryStatsInput) (*CategoryStatsOutput, error) {
	result, err := s.services.Stats.CategoryStats(ctx, input.UserID, domain.Category(input.Category))
	if err != nil {
		return nil, err
	}

	return &CategoryStatsOutput{Body: *result}, nil
}

func (s *Server) handleGetStatsOverview(ctx context.Context, input *StatsOverviewInput) (*StatsOverviewOutput, error) {
	overview, err := s.services.Stats.Overview(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &StatsOverviewOutput{Body: *overview}, nil
}
