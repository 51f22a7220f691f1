package elasticsearch

import (
	"github.com/cartside/storefront-search/internal/engine"
)

// facetTermsSize caps the number of value buckets returned per facet field.
const facetTermsSize = 50

// buildSearchQuery translates the engine-neutral query into Elasticsearch
// query DSL, including the terms aggregations that produce native facet
// counts.
func buildSearchQuery(q *engine.Query) map[string]interface{} {
	// Build the must clause.
	var mustClause interface{}
	if q.Query != "" && q.Query != engine.WildcardQuery {
		mustClause = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":         q.Query,
				"fields":        []string{"name^3", "name.autocomplete^2", "description", "category_names", "brand_name"},
				"type":          "best_fields",
				"fuzziness":     "AUTO",
				"prefix_length": 1,
			},
		}
	} else {
		mustClause = map[string]interface{}{
			"match_all": map[string]interface{}{},
		}
	}

	// Build the filter clauses.
	filters := buildFilters(q)

	// Build the bool query.
	boolQuery := map[string]interface{}{
		"must": []interface{}{mustClause},
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	page := q.Page
	if page < 0 {
		page = 0
	}
	perPage := q.HitsPerPage
	if perPage < 1 {
		perPage = 20
	}

	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"from":             page * perPage,
		"size":             perPage,
		"track_total_hits": true,
	}

	if sortClause := buildSort(q.SortField, q.SortOrder); sortClause != nil {
		esQuery["sort"] = sortClause
	}

	if aggs := buildAggregations(q.Facets); len(aggs) > 0 {
		esQuery["aggs"] = aggs
	}

	return esQuery
}

// buildFilters constructs the filter clauses from the query's facet,
// numeric, and raw filter expressions.
func buildFilters(q *engine.Query) []interface{} {
	var filters []interface{}

	// Values within one facet filter are OR-combined by the terms query;
	// separate clauses are AND-combined by the bool filter context.
	// Category values also match as ancestors of a stored " > " path, so
	// every label the facet builder offers is usable as a filter.
	for _, f := range q.FacetFilters {
		if f.Field == engine.FieldCategories {
			filters = append(filters, categoryFilter(f.Values))
			continue
		}
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{
				esField(f.Field): f.Values,
			},
		})
	}

	for _, f := range q.NumericFilters {
		rangeFilter := map[string]interface{}{}
		if f.Min != nil {
			rangeFilter["gte"] = *f.Min
		}
		if f.Max != nil {
			rangeFilter["lte"] = *f.Max
		}
		if len(rangeFilter) == 0 {
			continue
		}
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{
				f.Field: rangeFilter,
			},
		})
	}

	if q.Filters != "" {
		filters = append(filters, map[string]interface{}{
			"query_string": map[string]interface{}{
				"query": q.Filters,
			},
		})
	}

	return filters
}

// categoryFilter OR-combines exact and ancestor-prefix matches for every
// requested category value.
func categoryFilter(values []string) map[string]interface{} {
	should := make([]interface{}, 0, 2*len(values))
	for _, v := range values {
		should = append(should,
			map[string]interface{}{
				"term": map[string]interface{}{
					engine.FieldCategories: v,
				},
			},
			map[string]interface{}{
				"prefix": map[string]interface{}{
					engine.FieldCategories: v + engine.CategorySeparator,
				},
			},
		)
	}
	return map[string]interface{}{
		"bool": map[string]interface{}{
			"should":               should,
			"minimum_should_match": 1,
		},
	}
}

// buildSort constructs the sort clause from the engine-neutral directive.
// An empty field means the engine's default ranking.
func buildSort(field, order string) []interface{} {
	if field == "" {
		return nil
	}
	if order == "" {
		order = "asc"
	}
	return []interface{}{
		map[string]interface{}{esField(field): order},
	}
}

// buildAggregations requests one terms aggregation per facet field.
func buildAggregations(facets []string) map[string]interface{} {
	aggs := make(map[string]interface{}, len(facets))
	for _, f := range facets {
		aggs[f] = map[string]interface{}{
			"terms": map[string]interface{}{
				"field": esField(f),
				"size":  facetTermsSize,
			},
		}
	}
	return aggs
}

// esField maps an engine-neutral field name to the indexed field used for
// exact matching, filtering, and aggregation.
func esField(field string) string {
	if field == engine.FieldName {
		return "name.keyword"
	}
	return field
}
