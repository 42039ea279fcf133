// Package search provides full-text catalog search using Bleve: fuzzy
// title matching with category and genre filtering across every media
// category in one index.
package search

import (
	"strings"

	"github.com/medialog/medialog-server/internal/domain"
)

// SearchDocument is the document structure for the Bleve index. Every
// catalog item is flattened into one shape; the category field is the
// discriminator for result grouping.
type SearchDocument struct {
	ID       string `json:"id"`
	Category string `json:"category"`

	// Title is the primary search target.
	Title string `json:"title"`

	// Creator is the denormalized primary credit for the category:
	// author for books/manga, network for series, platform for games,
	// studio or publisher otherwise. Denormalizing keeps search to a
	// single query.
	Creator string `json:"creator,omitempty"`

	Cast []string `json:"cast,omitempty"`

	// Genre slugs for exact filtering and facets.
	GenreSlugs []string `json:"genre_slugs,omitempty"`

	// Labels - free-form content descriptors.
	Labels []string `json:"labels,omitempty"`

	// Numeric fields for range queries and sorting
	ReleaseYear int `json:"release_year,omitempty"`
	Units       int `json:"units,omitempty"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names so
// they match the index mapping. Bleve would otherwise index Go struct
// field names.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"category":   d.Category,
		"title":      d.Title,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Creator != "" {
		m["creator"] = d.Creator
	}
	if len(d.Cast) > 0 {
		m["cast"] = d.Cast
	}
	if len(d.GenreSlugs) > 0 {
		m["genre_slugs"] = d.GenreSlugs
	}
	if len(d.Labels) > 0 {
		m["labels"] = d.Labels
	}
	if d.ReleaseYear > 0 {
		m["release_year"] = d.ReleaseYear
	}
	if d.Units > 0 {
		m["units"] = d.Units
	}

	return m
}

// ItemToSearchDocument converts a catalog item to a SearchDocument.
func ItemToSearchDocument(item *domain.MediaItem) *SearchDocument {
	return &SearchDocument{
		ID:          item.ID,
		Category:    string(item.Category),
		Title:       item.Title,
		Creator:     primaryCreator(item),
		Cast:        item.Cast,
		GenreSlugs:  item.Genres,
		Labels:      item.Labels,
		ReleaseYear: item.ReleaseYear,
		Units:       item.Units,
		CreatedAt:   item.CreatedAt.UnixMilli(),
		UpdatedAt:   item.UpdatedAt.UnixMilli(),
	}
}

// primaryCreator picks the first non-empty credit for the item.
func primaryCreator(item *domain.MediaItem) string {
	for _, credit := range []string{item.Author, item.Network, item.Platform, item.Organization} {
		if strings.TrimSpace(credit) != "" {
			return credit
		}
	}
	return ""
}
