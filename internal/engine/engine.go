package engine

import (
	"context"

	"github.com/cartside/storefront-search/internal/domain"
)

// WildcardQuery is the match-all query text substituted for an empty or
// whitespace-only search term.
const WildcardQuery = "*"

// FacetFilter restricts a string facet field to a set of values. Values
// within one filter are OR-combined; separate filters are AND-combined.
type FacetFilter struct {
	Field  string
	Values []string
}

// NumericFilter restricts a numeric field to an inclusive range. Absent
// bounds are omitted from the translated expression, never defaulted.
type NumericFilter struct {
	Field string
	Min   *float64
	Max   *float64
}

// Query is the engine-neutral search payload. It is rebuilt fresh for every
// call and carries no state across requests.
type Query struct {
	Query       string
	Page        int // zero-based
	HitsPerPage int

	// SortField names an indexed field ("name", "default_price", "rating",
	// "sales_count", "created_at") or "_score". Empty means the engine's
	// default ranking.
	SortField string
	SortOrder string // "asc" or "desc"

	// Facets lists the fields to aggregate counts for.
	Facets []string

	FacetFilters   []FacetFilter
	NumericFilters []NumericFilter

	// Filters is an optional raw filter expression passed through to
	// engines that support one.
	Filters string
}

// FacetCounts maps facet field name to value label to document count.
type FacetCounts map[string]map[string]int

// Response is the raw engine output for one search call.
type Response struct {
	Hits        []domain.Document
	Total       int
	TookMs      int64
	FacetCounts FacetCounts
}

// SearchEngine defines the interface for indexing and searching products.
// Implementations may use Elasticsearch, in-memory storage, or other backends.
type SearchEngine interface {
	// Search executes a query and returns raw hits plus any native facet
	// counts the backend produced. Engine errors propagate unmodified.
	Search(ctx context.Context, query *Query) (*Response, error)

	// Index adds or updates a single document in the search index.
	Index(ctx context.Context, doc *domain.Document) error

	// Delete removes a document from the search index by its ID.
	Delete(ctx context.Context, id string) error

	// BulkIndex adds or updates multiple documents in the search index.
	BulkIndex(ctx context.Context, docs []domain.Document) error

	// Suggest returns autocomplete suggestions for the given prefix.
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}
