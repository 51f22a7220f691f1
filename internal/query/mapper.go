// Package query translates storefront filter requests into engine-neutral
// search queries. Mapping is a pure function with no I/O and no hidden
// state; the same SearchRequest always yields the same Query.
package query

import (
	"sort"
	"strings"

	"github.com/cartside/storefront-search/internal/domain"
	"github.com/cartside/storefront-search/internal/engine"
)

// Page size bounds applied when the request leaves them unset or absurd.
const (
	DefaultHitsPerPage = 20
	MaxHitsPerPage     = 100
)

// Map builds the engine query for a search request. An all-empty request
// means "all products", never "no products".
func Map(req *domain.SearchRequest) *engine.Query {
	q := &engine.Query{
		Query:       queryText(req.Term),
		Page:        req.Page,
		HitsPerPage: req.Limit,
		Facets:      engine.DefaultFacets(),
	}

	if q.Page < 0 {
		q.Page = 0
	}
	if q.HitsPerPage <= 0 {
		q.HitsPerPage = DefaultHitsPerPage
	}
	if q.HitsPerPage > MaxHitsPerPage {
		q.HitsPerPage = MaxHitsPerPage
	}

	q.SortField, q.SortOrder = sortClause(req.Sort)
	q.FacetFilters = facetFilters(req)
	q.NumericFilters = numericFilters(req)

	return q
}

// queryText substitutes the wildcard for empty or whitespace-only terms so
// an unconstrained request still matches everything.
func queryText(term string) string {
	if trimmed := strings.TrimSpace(term); trimmed != "" {
		return trimmed
	}
	return engine.WildcardQuery
}

// sortClause maps a storefront sort key to an engine sort directive.
// Featured, unknown, and absent keys all fall back to the engine's default
// ranking (no directive).
func sortClause(key string) (field, order string) {
	switch key {
	case domain.SortNewest:
		return engine.FieldCreatedAt, "desc"
	case domain.SortBestSelling:
		return engine.FieldSalesCount, "desc"
	case domain.SortAToZ:
		return engine.FieldName, "asc"
	case domain.SortZToA:
		return engine.FieldName, "desc"
	case domain.SortBestReviewed:
		return engine.FieldRating, "desc"
	case domain.SortLowestPrice:
		return engine.FieldDefaultPrice, "asc"
	case domain.SortHighestPrice:
		return engine.FieldDefaultPrice, "desc"
	case domain.SortRelevance:
		return engine.FieldScore, "desc"
	default:
		// SortFeatured and anything unrecognized.
		return "", ""
	}
}

// facetFilters builds the AND-combined facet filter list. Values within a
// single filter are OR-combined by the engine.
func facetFilters(req *domain.SearchRequest) []engine.FacetFilter {
	var filters []engine.FacetFilter

	if len(req.Brand) > 0 {
		filters = append(filters, engine.FacetFilter{
			Field:  engine.FieldBrandName,
			Values: req.Brand,
		})
	}

	// A single category and a category list may both be present; they
	// become separate entries, AND-combined across, OR within the list.
	if req.Category != "" {
		filters = append(filters, engine.FacetFilter{
			Field:  engine.FieldCategories,
			Values: []string{req.Category},
		})
	}
	if len(req.CategoryIn) > 0 {
		filters = append(filters, engine.FacetFilter{
			Field:  engine.FieldCategories,
			Values: req.CategoryIn,
		})
	}

	if req.HasStockFlag(domain.StockInStock) {
		filters = append(filters, engine.FacetFilter{
			Field:  engine.FieldInStock,
			Values: []string{"true"},
		})
	}

	if req.HasShippingFlag(domain.ShippingFreeShipping) {
		filters = append(filters, engine.FacetFilter{
			Field:  engine.FieldFreeShipping,
			Values: []string{"true"},
		})
	}

	// Dynamic attribute filters, in stable key order so repeated mapping
	// of the same request yields an identical query.
	if len(req.Attributes) > 0 {
		names := make([]string, 0, len(req.Attributes))
		for name := range req.Attributes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			values := req.Attributes[name]
			if len(values) == 0 {
				continue
			}
			filters = append(filters, engine.FacetFilter{
				Field:  engine.AttributeFieldPrefix + name,
				Values: values,
			})
		}
	}

	return filters
}

// numericFilters builds the range filter list. Absent bounds are omitted,
// never defaulted to 0 or infinity.
func numericFilters(req *domain.SearchRequest) []engine.NumericFilter {
	var filters []engine.NumericFilter

	if req.MinPrice != nil || req.MaxPrice != nil {
		filters = append(filters, engine.NumericFilter{
			Field: engine.FieldDefaultPrice,
			Min:   req.MinPrice,
			Max:   req.MaxPrice,
		})
	}

	if req.MinRating != nil || req.MaxRating != nil {
		filters = append(filters, engine.NumericFilter{
			Field: engine.FieldRating,
			Min:   req.MinRating,
			Max:   req.MaxRating,
		})
	}

	return filters
}
