package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

// reindexPageSize is the number of products fetched per catalog API page
// during a full reindex.
const reindexPageSize = 100

// catalogBrand is the embedded brand object on a catalog product.
type catalogBrand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// catalogProduct is one product as the catalog API lists it.
type catalogProduct struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Brand        *catalogBrand     `json:"brand,omitempty"`
	Categories   []string          `json:"categories"`
	Price        float64           `json:"price"`
	Currency     string            `json:"currency"`
	ImageURL     string            `json:"image_url"`
	InStock      bool              `json:"in_stock"`
	FreeShipping bool              `json:"free_shipping"`
	Rating       float64           `json:"rating"`
	SalesCount   int64             `json:"sales_count"`
	Attributes   map[string]string `json:"attributes"`
}

// catalogPage is the catalog API's paginated listing envelope.
type catalogPage struct {
	Data       []catalogProduct `json:"data"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}

// Reindex walks the catalog API's paginated product listing and bulk
// indexes every page. It replaces documents in place; deletions are handled
// by the product event stream, not by reindexing.
func (s *SearchService) Reindex(ctx context.Context) error {
	if s.catalogURL == "" {
		return fmt.Errorf("reindex: catalog service URL is not configured")
	}

	indexed := 0
	for page := 1; ; page++ {
		listing, err := s.fetchCatalogPage(ctx, page)
		if err != nil {
			return fmt.Errorf("reindex: %w", err)
		}

		inputs := make([]IndexProductInput, 0, len(listing.Data))
		for _, p := range listing.Data {
			input := IndexProductInput{
				ID:            p.ID,
				Name:          p.Name,
				Description:   p.Description,
				CategoryNames: p.Categories,
				Price:         p.Price,
				Currency:      p.Currency,
				ImageURL:      p.ImageURL,
				InStock:       p.InStock,
				FreeShipping:  p.FreeShipping,
				Rating:        p.Rating,
				SalesCount:    p.SalesCount,
				Attributes:    p.Attributes,
			}
			if p.Brand != nil {
				input.BrandName = p.Brand.Name
			}
			inputs = append(inputs, input)
		}

		if len(inputs) > 0 {
			if err := s.BulkIndex(ctx, inputs); err != nil {
				return fmt.Errorf("reindex page %d: %w", page, err)
			}
			indexed += len(inputs)
		}

		if page >= listing.TotalPages || len(listing.Data) == 0 {
			break
		}
	}

	s.logger.InfoContext(ctx, "reindex completed",
		slog.Int("products", indexed),
	)

	return nil
}

// fetchCatalogPage requests one page of the catalog product listing.
func (s *SearchService) fetchCatalogPage(ctx context.Context, page int) (*catalogPage, error) {
	endpoint, err := url.Parse(s.catalogURL + "/api/v1/products")
	if err != nil {
		return nil, fmt.Errorf("parse catalog URL: %w", err)
	}

	params := endpoint.Query()
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(reindexPageSize))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog page %d: %w", page, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog page %d: unexpected status %s", page, resp.Status)
	}

	var listing catalogPage
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode catalog page %d: %w", page, err)
	}

	return &listing, nil
}
