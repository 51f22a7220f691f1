package elasticsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartside/storefront-search/internal/engine"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildSearchQuery_WildcardBecomesMatchAll(t *testing.T) {
	q := buildSearchQuery(&engine.Query{Query: "*", HitsPerPage: 10})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	assert.Contains(t, must[0], "match_all")
}

func TestBuildSearchQuery_TextTermUsesMultiMatch(t *testing.T) {
	q := buildSearchQuery(&engine.Query{Query: "tent", HitsPerPage: 10})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	mm := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "tent", mm["query"])
}

func TestBuildSearchQuery_Filters(t *testing.T) {
	q := buildSearchQuery(&engine.Query{
		Query:       "*",
		HitsPerPage: 10,
		FacetFilters: []engine.FacetFilter{
			{Field: "brand_name", Values: []string{"Acme", "Globex"}},
		},
		NumericFilters: []engine.NumericFilter{
			{Field: "default_price", Min: floatPtr(10), Max: floatPtr(100)},
		},
	})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 2)

	terms := filters[0].(map[string]interface{})["terms"].(map[string]interface{})
	assert.Equal(t, []string{"Acme", "Globex"}, terms["brand_name"])

	rangeFilter := filters[1].(map[string]interface{})["range"].(map[string]interface{})["default_price"].(map[string]interface{})
	assert.Equal(t, 10.0, rangeFilter["gte"])
	assert.Equal(t, 100.0, rangeFilter["lte"])
}

func TestBuildSearchQuery_CategoryFilterMatchesAncestorPaths(t *testing.T) {
	q := buildSearchQuery(&engine.Query{
		Query:       "*",
		HitsPerPage: 10,
		FacetFilters: []engine.FacetFilter{
			{Field: "category_names", Values: []string{"Outdoor"}},
		},
	})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 1)

	inner := filters[0].(map[string]interface{})["bool"].(map[string]interface{})
	assert.Equal(t, 1, inner["minimum_should_match"])

	should := inner["should"].([]interface{})
	require.Len(t, should, 2)

	term := should[0].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "Outdoor", term["category_names"])

	prefix := should[1].(map[string]interface{})["prefix"].(map[string]interface{})
	assert.Equal(t, "Outdoor > ", prefix["category_names"])
}

func TestBuildSearchQuery_OpenEndedRange(t *testing.T) {
	q := buildSearchQuery(&engine.Query{
		Query:       "*",
		HitsPerPage: 10,
		NumericFilters: []engine.NumericFilter{
			{Field: "default_price", Min: floatPtr(25)},
		},
	})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 1)

	rangeFilter := filters[0].(map[string]interface{})["range"].(map[string]interface{})["default_price"].(map[string]interface{})
	assert.Equal(t, 25.0, rangeFilter["gte"])
	assert.NotContains(t, rangeFilter, "lte")
}

func TestBuildSearchQuery_ZeroBasedPagination(t *testing.T) {
	q := buildSearchQuery(&engine.Query{Query: "*", Page: 2, HitsPerPage: 9})
	assert.Equal(t, 18, q["from"])
	assert.Equal(t, 9, q["size"])

	q = buildSearchQuery(&engine.Query{Query: "*", Page: 0, HitsPerPage: 9})
	assert.Equal(t, 0, q["from"])
}

func TestBuildSearchQuery_SortMapsNameToKeyword(t *testing.T) {
	q := buildSearchQuery(&engine.Query{Query: "*", HitsPerPage: 10, SortField: "name", SortOrder: "asc"})
	sortClause := q["sort"].([]interface{})
	require.Len(t, sortClause, 1)
	assert.Equal(t, map[string]interface{}{"name.keyword": "asc"}, sortClause[0])

	q = buildSearchQuery(&engine.Query{Query: "*", HitsPerPage: 10})
	assert.NotContains(t, q, "sort")
}

func TestBuildSearchQuery_Aggregations(t *testing.T) {
	q := buildSearchQuery(&engine.Query{
		Query:       "*",
		HitsPerPage: 10,
		Facets:      []string{"brand_name", "category_names"},
	})

	aggs := q["aggs"].(map[string]interface{})
	require.Len(t, aggs, 2)

	brand := aggs["brand_name"].(map[string]interface{})["terms"].(map[string]interface{})
	assert.Equal(t, "brand_name", brand["field"])
	assert.Equal(t, facetTermsSize, brand["size"])
}

func TestFacetCounts_BucketKeys(t *testing.T) {
	aggs := map[string]esAggregation{
		"brand_name": {Buckets: []struct {
			Key         any    `json:"key"`
			KeyAsString string `json:"key_as_string"`
			DocCount    int    `json:"doc_count"`
		}{
			{Key: "Acme", DocCount: 3},
		}},
		"in_stock": {Buckets: []struct {
			Key         any    `json:"key"`
			KeyAsString string `json:"key_as_string"`
			DocCount    int    `json:"doc_count"`
		}{
			{Key: float64(1), KeyAsString: "true", DocCount: 5},
		}},
		"default_price": {Buckets: []struct {
			Key         any    `json:"key"`
			KeyAsString string `json:"key_as_string"`
			DocCount    int    `json:"doc_count"`
		}{
			{Key: float64(19.99), DocCount: 2},
		}},
		"empty": {},
	}

	counts := facetCounts(aggs)

	assert.Equal(t, 3, counts["brand_name"]["Acme"])
	assert.Equal(t, 5, counts["in_stock"]["true"])
	assert.Equal(t, 2, counts["default_price"]["19.99"])
	assert.NotContains(t, counts, "empty")
}

func TestFacetCounts_EmptyAggregationsReturnNil(t *testing.T) {
	assert.Nil(t, facetCounts(nil))
	assert.Nil(t, facetCounts(map[string]esAggregation{"brand_name": {}}))
}
