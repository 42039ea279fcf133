package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/errors"
	"github.com/medialog/medialog-server/internal/id"
	"github.com/medialog/medialog-server/internal/search"
	"github.com/medialog/medialog-server/internal/store"
)

// CatalogService manages media items and keeps the search index in
// sync. It implements store.SearchIndexer so the store can push index
// updates after catalog writes.
type CatalogService struct {
	store  *store.Store
	index  *search.SearchIndex
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service and registers it as
// the store's search indexer.
func NewCatalogService(st *store.Store, index *search.SearchIndex, logger *slog.Logger) *CatalogService {
	s := &CatalogService{
		store:  st,
		index:  index,
		logger: logger,
	}
	st.SetSearchIndexer(s)
	return s
}

// CreateItem adds a new item to the catalog.
func (s *CatalogService) CreateItem(ctx context.Context, item *domain.MediaItem) (*domain.MediaItem, error) {
	if !item.Category.Valid() {
		return nil, errors.Validationf("unknown category %q", item.Category)
	}
	if strings.TrimSpace(item.Title) == "" {
		return nil, errors.Validation("title is required")
	}

	if item.ID == "" {
		itemID, err := id.Generate("itm")
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "generating item id")
		}
		item.ID = itemID
	}
	item.InitTimestamps()

	if err := s.store.CreateMediaItem(ctx, item); err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("catalog item created",
		"item_id", item.ID, "category", item.Category, "title", item.Title)
	return item, nil
}

// GetItem returns one catalog item.
func (s *CatalogService) GetItem(ctx context.Context, category domain.Category, itemID string) (*domain.MediaItem, error) {
	if !category.Valid() {
		return nil, errors.Validationf("unknown category %q", category)
	}
	item, err := s.store.GetMediaItem(ctx, category, itemID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return item, nil
}

// ListItems returns every catalog item in a category.
func (s *CatalogService) ListItems(ctx context.Context, category domain.Category) ([]*domain.MediaItem, error) {
	if !category.Valid() {
		return nil, errors.Validationf("unknown category %q", category)
	}
	items, err := s.store.ListMediaItems(ctx, category)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return items, nil
}

// Search runs a full-text query over the catalog.
func (s *CatalogService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	for _, c := range params.Categories {
		if !domain.Category(c).Valid() {
			return nil, errors.Validationf("unknown category %q", c)
		}
	}
	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "search failed")
	}
	return result, nil
}

// ReindexAll rebuilds the search index from the stored catalog.
func (s *CatalogService) ReindexAll(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	var docs []*search.SearchDocument
	for _, category := range domain.Categories() {
		items, err := s.store.ListMediaItems(ctx, category)
		if err != nil {
			return fmt.Errorf("list %s items: %w", category, err)
		}
		for _, item := range items {
			docs = append(docs, search.ItemToSearchDocument(item))
		}
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}

	s.logger.Info("catalog reindexed", "documents", len(docs))
	return nil
}

// DocumentCount returns the number of indexed catalog documents.
func (s *CatalogService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// IndexItem implements store.SearchIndexer.
func (s *CatalogService) IndexItem(_ context.Context, item *domain.MediaItem) error {
	return s.index.IndexDocument(search.ItemToSearchDocument(item))
}

// DeleteItem implements store.SearchIndexer.
func (s *CatalogService) DeleteItem(_ context.Context, itemID string) error {
	return s.index.DeleteDocument(itemID)
}
