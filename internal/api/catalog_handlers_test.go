package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medialog/medialog-server/internal/search"
)

func TestCreateCatalogItem_Validation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	// Unknown category.
	resp := ts.api.Post("/api/v1/catalog/podcasts", map[string]any{
		"title": "Serial",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Blank title.
	resp = ts.api.Post("/api/v1/catalog/movies", map[string]any{
		"title": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCatalogItem_CreateGetList(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	itemID := ts.createTestItem(t, "books", map[string]any{
		"title":  "The Left Hand of Darkness",
		"author": "Ursula K. Le Guin",
		"units":  304,
		"genres": []string{"sci-fi"},
	})

	resp := ts.api.Get("/api/v1/catalog/books/" + itemID)
	require.Equal(t, http.StatusOK, resp.Code)

	var item MediaItemResponse
	decodeBody(t, resp.Body.Bytes(), &item)
	assert.Equal(t, "The Left Hand of Darkness", item.Title)
	assert.Equal(t, "Ursula K. Le Guin", item.Author)

	// The item is scoped to its own category.
	resp = ts.api.Get("/api/v1/catalog/movies/" + itemID)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/catalog/books")
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListCatalogItemsResponse
	decodeBody(t, resp.Body.Bytes(), &list)
	assert.Len(t, list.Items, 1)
}

func TestSearchCatalog_FindsIndexedItem(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestItem(t, "manga", map[string]any{
		"title":  "Berserk",
		"author": "Kentaro Miura",
		"units":  364,
	})

	resp := ts.api.Get("/api/v1/catalog/search?q=berserk")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var result search.SearchResult
	decodeBody(t, resp.Body.Bytes(), &result)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "Berserk", result.Hits[0].Title)
	assert.Equal(t, "manga", result.Hits[0].Category)
}

func TestSearchCatalog_UnknownCategoryFilter(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/catalog/search?q=test&category=podcasts")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
