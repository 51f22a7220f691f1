package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cartside/storefront-search/pkg/pagination"

	"github.com/cartside/storefront-search/internal/domain"
	"github.com/cartside/storefront-search/internal/engine"
	"github.com/cartside/storefront-search/internal/facet"
	"github.com/cartside/storefront-search/internal/query"
)

// SearchService composes the query mapper, the search engine, and the
// result/facet transformation into the storefront search pipeline.
type SearchService struct {
	engine     engine.SearchEngine
	facets     *facet.Builder
	logger     *slog.Logger
	currency   string
	catalogURL string
	httpClient *http.Client
}

// NewSearchService creates a new search service. currency selects the
// entry used from per-currency price maps; catalogURL points at the
// catalog API used for full reindexing.
func NewSearchService(eng engine.SearchEngine, facets *facet.Builder, currency, catalogURL string, logger *slog.Logger) *SearchService {
	return &SearchService{
		engine:     eng,
		facets:     facets,
		logger:     logger,
		currency:   currency,
		catalogURL: catalogURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search runs one request through the full pipeline: map the filters to an
// engine query, execute it, normalize the hits, and derive facet groups.
// Engine errors propagate to the caller unmodified apart from wrapping.
func (s *SearchService) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResult, error) {
	q := query.Map(req)

	s.logger.DebugContext(ctx, "search query built",
		slog.String("query", q.Query),
		slog.Int("page", q.Page),
		slog.Int("hits_per_page", q.HitsPerPage),
		slog.Int("facet_filters", len(q.FacetFilters)),
		slog.Int("numeric_filters", len(q.NumericFilters)),
	)

	resp, err := s.engine.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	s.logger.DebugContext(ctx, "search executed",
		slog.String("query", q.Query),
		slog.Int("total", resp.Total),
		slog.Int64("took_ms", resp.TookMs),
		slog.Bool("native_facets", len(resp.FacetCounts) > 0),
	)

	products := make([]domain.Product, 0, len(resp.Hits))
	for i := range resp.Hits {
		products = append(products, s.normalizeProduct(ctx, &resp.Hits[i]))
	}

	// Native facet counts when the engine produced them, otherwise re-tally
	// from the hit page so the UI still gets usable filter controls.
	counts := resp.FacetCounts
	if len(counts) == 0 {
		counts = s.facets.Tally(resp.Hits, func(d *domain.Document) (float64, bool) {
			return resolvePrice(d, s.currency)
		})
	}

	info := pagination.NewPageInfo(q.Page, q.HitsPerPage, resp.Total)

	return &domain.SearchResult{
		TotalItems:      resp.Total,
		HasNextPage:     info.HasNextPage,
		HasPreviousPage: info.HasPreviousPage,
		StartCursor:     info.StartCursor,
		EndCursor:       info.EndCursor,
		Products:        products,
		Facets:          s.facets.Build(req, counts),
		TookMs:          resp.TookMs,
	}, nil
}

// normalizeProduct maps a raw hit into the storefront product shape. The
// output is identical regardless of which upstream source produced the hit.
func (s *SearchService) normalizeProduct(ctx context.Context, d *domain.Document) domain.Product {
	price, ok := resolvePrice(d, s.currency)
	if !ok {
		s.logger.WarnContext(ctx, "unresolvable product price, defaulting to zero",
			slog.String("product_id", d.ObjectID),
			slog.String("name", d.Name),
		)
	}

	return domain.Product{
		ID:    d.ObjectID,
		Name:  d.Name,
		Brand: d.BrandName,
		Price: price,
		Image: resolveImage(d),
	}
}

// Suggest returns autocomplete suggestions for a search term prefix.
func (s *SearchService) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	suggestions, err := s.engine.Suggest(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return suggestions, nil
}

// IndexProductInput holds the parameters for indexing a product.
type IndexProductInput struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	BrandName     string            `json:"brand_name"`
	CategoryNames []string          `json:"category_names"`
	Price         float64           `json:"price"`
	Currency      string            `json:"currency"`
	ImageURL      string            `json:"image_url"`
	ImageAlt      string            `json:"image_alt"`
	InStock       bool              `json:"in_stock"`
	FreeShipping  bool              `json:"free_shipping"`
	Rating        float64           `json:"rating"`
	SalesCount    int64             `json:"sales_count"`
	Attributes    map[string]string `json:"attributes"`
}

func (in *IndexProductInput) toDocument(now time.Time) domain.Document {
	doc := domain.Document{
		ObjectID:      in.ID,
		Name:          in.Name,
		Description:   in.Description,
		BrandName:     in.BrandName,
		CategoryNames: in.CategoryNames,
		Currency:      in.Currency,
		InStock:       in.InStock,
		FreeShipping:  in.FreeShipping,
		Rating:        in.Rating,
		SalesCount:    in.SalesCount,
		Attributes:    in.Attributes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if in.Price > 0 {
		price := in.Price
		doc.DefaultPrice = &price
	}
	if in.ImageURL != "" {
		doc.DefaultImage = &domain.Image{URL: in.ImageURL, AltText: in.ImageAlt}
	}
	if doc.CategoryNames == nil {
		doc.CategoryNames = []string{}
	}
	if doc.Attributes == nil {
		doc.Attributes = make(map[string]string)
	}

	return doc
}

// IndexProduct indexes a single product in the search engine.
func (s *SearchService) IndexProduct(ctx context.Context, input *IndexProductInput) error {
	if input.ID == "" {
		return fmt.Errorf("index product: id is required")
	}
	if input.Name == "" {
		return fmt.Errorf("index product: name is required")
	}

	doc := input.toDocument(time.Now().UTC())
	if err := s.engine.Index(ctx, &doc); err != nil {
		return fmt.Errorf("index product: %w", err)
	}

	s.logger.InfoContext(ctx, "product indexed",
		slog.String("product_id", input.ID),
		slog.String("name", input.Name),
	)

	return nil
}

// DeleteProduct removes a product from the search index.
func (s *SearchService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete product: id is required")
	}

	if err := s.engine.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted from index",
		slog.String("product_id", id),
	)

	return nil
}

// BulkIndex indexes multiple products in the search engine.
func (s *SearchService) BulkIndex(ctx context.Context, inputs []IndexProductInput) error {
	now := time.Now().UTC()

	docs := make([]domain.Document, 0, len(inputs))
	for i := range inputs {
		if inputs[i].ID == "" {
			continue
		}
		docs = append(docs, inputs[i].toDocument(now))
	}

	if err := s.engine.BulkIndex(ctx, docs); err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}

	s.logger.InfoContext(ctx, "bulk index completed",
		slog.Int("count", len(docs)),
	)

	return nil
}
