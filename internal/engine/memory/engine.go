// Package memory provides an in-memory SearchEngine used in tests and as a
// config-selectable fallback when no Elasticsearch cluster is available.
// It evaluates queries directly against stored documents and returns no
// native facet counts, so callers exercise fallback aggregation.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cartside/storefront-search/internal/domain"
	"github.com/cartside/storefront-search/internal/engine"
)

// Engine is an in-memory implementation of the SearchEngine interface.
// Thread-safe via sync.RWMutex.
type Engine struct {
	mu   sync.RWMutex
	docs map[string]domain.Document
}

// New creates a new in-memory search engine.
func New() *Engine {
	return &Engine{
		docs: make(map[string]domain.Document),
	}
}

// Index adds or updates a single document in the in-memory index.
func (e *Engine) Index(_ context.Context, doc *domain.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.docs[doc.ObjectID] = *doc
	return nil
}

// Delete removes a document from the in-memory index by its ID.
func (e *Engine) Delete(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.docs, id)
	return nil
}

// BulkIndex adds or updates multiple documents in the in-memory index.
func (e *Engine) BulkIndex(_ context.Context, docs []domain.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range docs {
		e.docs[docs[i].ObjectID] = docs[i]
	}
	return nil
}

// Search evaluates the query against the in-memory index.
func (e *Engine) Search(_ context.Context, query *engine.Query) (*engine.Response, error) {
	start := time.Now()

	e.mu.RLock()
	defer e.mu.RUnlock()

	matched := make([]domain.Document, 0)
	for _, d := range e.docs {
		if matches(&d, query) {
			matched = append(matched, d)
		}
	}

	sortDocs(matched, query.SortField, query.SortOrder)

	total := len(matched)

	page := query.Page
	if page < 0 {
		page = 0
	}
	perPage := query.HitsPerPage
	if perPage < 1 {
		perPage = 20
	}

	offset := page * perPage
	if offset > total {
		offset = total
	}
	end := offset + perPage
	if end > total {
		end = total
	}

	return &engine.Response{
		Hits:   matched[offset:end],
		Total:  total,
		TookMs: time.Since(start).Milliseconds(),
	}, nil
}

// Suggest returns unique document names whose prefix matches, ordered by name.
func (e *Engine) Suggest(_ context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	prefixLower := strings.ToLower(prefix)
	seen := make(map[string]struct{})
	var names []string
	for _, d := range e.docs {
		if !strings.HasPrefix(strings.ToLower(d.Name), prefixLower) {
			continue
		}
		if _, ok := seen[d.Name]; ok {
			continue
		}
		seen[d.Name] = struct{}{}
		names = append(names, d.Name)
	}

	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// matches checks whether a document satisfies every clause of the query.
func matches(d *domain.Document, q *engine.Query) bool {
	if q.Query != "" && q.Query != engine.WildcardQuery {
		text := strings.ToLower(q.Query)
		if !strings.Contains(strings.ToLower(d.Name), text) &&
			!strings.Contains(strings.ToLower(d.Description), text) &&
			!strings.Contains(strings.ToLower(d.BrandName), text) {
			return false
		}
	}

	// Facet filters AND across entries, OR within an entry's values.
	// Category values match hierarchically so a parent path matches every
	// document indexed under it.
	for _, f := range q.FacetFilters {
		match := containsAny
		if f.Field == engine.FieldCategories {
			match = containsAnyCategory
		}
		if !match(facetValues(d, f.Field), f.Values) {
			return false
		}
	}

	for _, f := range q.NumericFilters {
		v := numericValue(d, f.Field)
		if f.Min != nil && v < *f.Min {
			return false
		}
		if f.Max != nil && v > *f.Max {
			return false
		}
	}

	return true
}

func containsAny(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// containsAnyCategory matches a stored category name exactly or as an
// ancestor prefix of its " > " path.
func containsAnyCategory(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w || strings.HasPrefix(h, w+engine.CategorySeparator) {
				return true
			}
		}
	}
	return false
}

// facetValues extracts a document's values for a facet field.
func facetValues(d *domain.Document, field string) []string {
	switch field {
	case engine.FieldBrandName:
		return []string{d.BrandName}
	case engine.FieldCategories:
		return d.CategoryNames
	case engine.FieldInStock:
		return []string{strconv.FormatBool(d.InStock)}
	case engine.FieldFreeShipping:
		return []string{strconv.FormatBool(d.FreeShipping)}
	default:
		if name, ok := strings.CutPrefix(field, engine.AttributeFieldPrefix); ok {
			if v, ok := d.Attributes[name]; ok {
				return []string{v}
			}
		}
		return nil
	}
}

// numericValue extracts a document's value for a numeric field.
func numericValue(d *domain.Document, field string) float64 {
	switch field {
	case engine.FieldDefaultPrice:
		if d.DefaultPrice != nil {
			return *d.DefaultPrice
		}
		return 0
	case engine.FieldRating:
		return d.Rating
	case engine.FieldSalesCount:
		return float64(d.SalesCount)
	default:
		return 0
	}
}

// sortDocs orders matched documents based on the query's sort directive.
func sortDocs(docs []domain.Document, field, order string) {
	var less func(i, j int) bool

	switch field {
	case engine.FieldName:
		less = func(i, j int) bool { return docs[i].Name < docs[j].Name }
	case engine.FieldDefaultPrice:
		less = func(i, j int) bool { return numericValue(&docs[i], field) < numericValue(&docs[j], field) }
	case engine.FieldRating:
		less = func(i, j int) bool { return docs[i].Rating < docs[j].Rating }
	case engine.FieldSalesCount:
		less = func(i, j int) bool { return docs[i].SalesCount < docs[j].SalesCount }
	case engine.FieldCreatedAt:
		less = func(i, j int) bool { return docs[i].CreatedAt.Before(docs[j].CreatedAt) }
	default:
		// Default ranking or _score: stable by ID so pagination windows
		// never overlap between calls.
		less = func(i, j int) bool { return docs[i].ObjectID < docs[j].ObjectID }
		order = "asc"
	}

	if order == "desc" {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}

	sort.SliceStable(docs, less)
}
