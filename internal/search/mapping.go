package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for catalog
// documents: English-stemmed full-text on title and cast, exact keyword
// matching for category/genre filters, numeric ranges for year.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Title - primary search target
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Creator - searchable with simple analyzer (no stemming on names)
	creatorFieldMapping := bleve.NewTextFieldMapping()
	creatorFieldMapping.Analyzer = simple.Name
	creatorFieldMapping.Store = true
	creatorFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("creator", creatorFieldMapping)

	// Cast - searchable names
	castFieldMapping := bleve.NewTextFieldMapping()
	castFieldMapping.Analyzer = simple.Name
	castFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("cast", castFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// Category - for filtering by media category
	categoryFieldMapping := bleve.NewTextFieldMapping()
	categoryFieldMapping.Analyzer = keyword.Name
	categoryFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Genre slugs - for exact genre filtering and display
	genreSlugsFieldMapping := bleve.NewTextFieldMapping()
	genreSlugsFieldMapping.Analyzer = keyword.Name
	genreSlugsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("genre_slugs", genreSlugsFieldMapping)

	// Labels - keyword analyzer keeps compound slugs intact (e.g. "slow-burn")
	labelsFieldMapping := bleve.NewTextFieldMapping()
	labelsFieldMapping.Analyzer = keyword.Name
	labelsFieldMapping.Store = true
	labelsFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("labels", labelsFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	yearFieldMapping := bleve.NewNumericFieldMapping()
	yearFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("release_year", yearFieldMapping)

	unitsFieldMapping := bleve.NewNumericFieldMapping()
	unitsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("units", unitsFieldMapping)

	// Timestamps - for sorting by recency
	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
