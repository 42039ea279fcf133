package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/search"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createCatalogItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/{category}",
		Summary:     "Create catalog item",
		Description: "Adds a new media item to the shared catalog",
		Tags:        []string{"Catalog"},
	}, s.handleCreateCatalogItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{category}/{itemID}",
		Summary:     "Get catalog item",
		Description: "Returns a catalog item by category and ID",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalogItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCatalogItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{category}",
		Summary:     "List catalog items",
		Description: "Returns all catalog items in a category",
		Tags:        []string{"Catalog"},
	}, s.handleListCatalogItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search catalog",
		Description: "Full-text search over the catalog with filters and facets",
		Tags:        []string{"Catalog"},
	}, s.handleSearchCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "reindexCatalog",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/reindex",
		Summary:     "Reindex catalog",
		Description: "Rebuilds the search index from the stored catalog",
		Tags:        []string{"Admin"},
	}, s.handleReindexCatalog)
}

// === DTOs ===

// MediaItemResponse contains catalog item data in API responses.
type MediaItemResponse struct {
	ID           string    `json:"id" doc:"Item ID"`
	Category     string    `json:"category" doc:"Media category"`
	Title        string    `json:"title" doc:"Title"`
	ReleaseYear  int       `json:"release_year,omitempty" doc:"Release year"`
	Units        int       `json:"units,omitempty" doc:"Total progress units (episodes, pages, chapters)"`
	RuntimeMin   int       `json:"runtime_min,omitempty" doc:"Runtime in minutes per unit, or total for movies"`
	Genres       []string  `json:"genres,omitempty" doc:"Genre slugs"`
	Labels       []string  `json:"labels,omitempty" doc:"Free-form labels"`
	Cast         []string  `json:"cast,omitempty" doc:"Cast names"`
	Network      string    `json:"network,omitempty" doc:"Broadcaster or publisher"`
	Platform     string    `json:"platform,omitempty" doc:"Game platform"`
	Organization string    `json:"organization,omitempty" doc:"Studio or developer"`
	Author       string    `json:"author,omitempty" doc:"Author"`
	SubUnits     []int     `json:"sub_units,omitempty" doc:"Units per season or volume"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

// CreateMediaItemRequest is the request body for creating a catalog item.
type CreateMediaItemRequest struct {
	Title        string   `json:"title" minLength:"1" doc:"Title"`
	ReleaseYear  int      `json:"release_year,omitempty" doc:"Release year"`
	Units        int      `json:"units,omitempty" doc:"Total progress units"`
	RuntimeMin   int      `json:"runtime_min,omitempty" doc:"Runtime in minutes"`
	Genres       []string `json:"genres,omitempty" doc:"Genre slugs"`
	Labels       []string `json:"labels,omitempty" doc:"Free-form labels"`
	Cast         []string `json:"cast,omitempty" doc:"Cast names"`
	Network      string   `json:"network,omitempty" doc:"Broadcaster or publisher"`
	Platform     string   `json:"platform,omitempty" doc:"Game platform"`
	Organization string   `json:"organization,omitempty" doc:"Studio or developer"`
	Author       string   `json:"author,omitempty" doc:"Author"`
	SubUnits     []int    `json:"sub_units,omitempty" doc:"Units per season or volume"`
}

// CreateCatalogItemInput wraps the create item request for Huma.
type CreateCatalogItemInput struct {
	Category string `path:"category" doc:"Media category"`
	Body     CreateMediaItemRequest
}

// MediaItemOutput wraps the item response for Huma.
type MediaItemOutput struct {
	Body MediaItemResponse
}

// GetCatalogItemInput contains parameters for getting a catalog item.
type GetCatalogItemInput struct {
	Category string `path:"category" doc:"Media category"`
	ItemID   string `path:"itemID" doc:"Item ID"`
}

// ListCatalogItemsInput contains parameters for listing catalog items.
type ListCatalogItemsInput struct {
	Category string `path:"category" doc:"Media category"`
}

// ListCatalogItemsResponse contains a list of catalog items.
type ListCatalogItemsResponse struct {
	Items []MediaItemResponse `json:"items" doc:"Catalog items"`
}

// ListCatalogItemsOutput wraps the list response for Huma.
type ListCatalogItemsOutput struct {
	Body ListCatalogItemsResponse
}

// SearchCatalogInput contains query parameters for catalog search.
type SearchCatalogInput struct {
	Query      string   `query:"q" doc:"Search query"`
	Categories []string `query:"category" doc:"Categories to include (repeatable)"`
	Genres     []string `query:"genre" doc:"Genre slugs to filter by (repeatable)"`
	MinYear    int      `query:"min_year" doc:"Minimum release year"`
	MaxYear    int      `query:"max_year" doc:"Maximum release year"`
	Limit      int      `query:"limit" doc:"Page size (default 20)"`
	Offset     int      `query:"offset" doc:"Page offset"`
	SortBy     string   `query:"sort" doc:"Sort field: relevance, title, year, recent"`
	SortOrder  string   `query:"order" doc:"Sort order: asc or desc"`
}

// SearchCatalogOutput wraps the search result for Huma.
type SearchCatalogOutput struct {
	Body search.SearchResult
}

// ReindexOutput wraps the reindex response for Huma.
type ReindexOutput struct {
	Body MessageResponse
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
}

// MessageOutput wraps a message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

func toMediaItemResponse(item *domain.MediaItem) MediaItemResponse {
	return MediaItemResponse{
		ID:           item.ID,
		Category:     string(item.Category),
		Title:        item.Title,
		ReleaseYear:  item.ReleaseYear,
		Units:        item.Units,
		RuntimeMin:   item.RuntimeMin,
		Genres:       item.Genres,
		Labels:       item.Labels,
		Cast:         item.Cast,
		Network:      item.Network,
		Platform:     item.Platform,
		Organization: item.Organization,
		Author:       item.Author,
		SubUnits:     item.SubUnits,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleCreateCatalogItem(ctx context.Context, input *CreateCatalogItemInput) (*MediaItemOutput, error) {
	item := &domain.MediaItem{
		Category:     domain.Category(input.Category),
		Title:        input.Body.Title,
		ReleaseYear:  input.Body.ReleaseYear,
		Units:        input.Body.Units,
		RuntimeMin:   input.Body.RuntimeMin,
		Genres:       input.Body.Genres,
		Labels:       input.Body.Labels,
		Cast:         input.Body.Cast,
		Network:      input.Body.Network,
		Platform:     input.Body.Platform,
		Organization: input.Body.Organization,
		Author:       input.Body.Author,
		SubUnits:     input.Body.SubUnits,
	}

	created, err := s.services.Catalog.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}

	return &MediaItemOutput{Body: toMediaItemResponse(created)}, nil
}

func (s *Server) handleGetCatalogItem(ctx context.Context, input *GetCatalogItemInput) (*MediaItemOutput, error) {
	item, err := s.services.Catalog.GetItem(ctx, domain.Category(input.Category), input.ItemID)
	if err != nil {
		return nil, err
	}

	return &MediaItemOutput{Body: toMediaItemResponse(item)}, nil
}

func (s *Server) handleListCatalogItems(ctx context.Context, input *ListCatalogItemsInput) (*ListCatalogItemsOutput, error) {
	items, err := s.services.Catalog.ListItems(ctx, domain.Category(input.Category))
	if err != nil {
		return nil, err
	}

	resp := make([]MediaItemResponse, len(items))
	for i, item := range items {
		resp[i] = toMediaItemResponse(item)
	}

	return &ListCatalogItemsOutput{Body: ListCatalogItemsResponse{Items: resp}}, nil
}

func (s *Server) handleSearchCatalog(ctx context.Context, input *SearchCatalogInput) (*SearchCatalogOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Categories = input.Categories
	params.GenreSlugs = input.Genres
	params.MinYear = input.MinYear
	params.MaxYear = input.MaxYear
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}
	if input.SortOrder != "" {
		params.SortOrder = input.SortOrder
	}

	result, err := s.services.Catalog.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchCatalogOutput{Body: *result}, nil
}

func (s *Server) handleReindexCatalog(ctx context.Context, _ *struct{}) (*ReindexOutput, error) {
	if err := s.services.Catalog.ReindexAll(ctx); err != nil {
		return nil, err
	}

	return &ReindexOutput{Body: MessageResponse{Message: "Catalog reindexed"}}, nil
}
