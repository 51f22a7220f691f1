package http

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/cartside/storefront-search/internal/domain"
	"github.com/cartside/storefront-search/pkg/pagination"
)

// attrParamPrefix marks query parameters that carry dynamic attribute
// filters, e.g. attr_color=Red&attr_color=Blue.
const attrParamPrefix = "attr_"

const maxLimit = 100

// parseSearchRequest decodes the URL query string into a SearchRequest.
// A parse failure on any parameter aborts the whole request so callers
// never silently search with a partially applied filter set.
func parseSearchRequest(r *http.Request) (*domain.SearchRequest, error) {
	q := r.URL.Query()

	req := &domain.SearchRequest{
		Term: strings.TrimSpace(q.Get("term")),
	}

	if v := q.Get("sort"); v != "" {
		if !domain.IsValidSort(v) {
			return nil, fmt.Errorf("sort must be one of: %s", strings.Join(domain.ValidSortOptions(), ", "))
		}
		req.Sort = v
	}

	// The cursor carries the page number; a bare page parameter is accepted
	// as well for non-cursor clients. Cursor wins when both are present.
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			return nil, fmt.Errorf("page must be a non-negative integer")
		}
		req.Page = page
	}
	if v := q.Get("cursor"); v != "" {
		page, err := pagination.ParseCursor(v)
		if err != nil {
			return nil, fmt.Errorf("cursor is not valid")
		}
		req.Page = page
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxLimit {
			return nil, fmt.Errorf("limit must be between 1 and %d", maxLimit)
		}
		req.Limit = limit
	}

	req.Brand = nonEmpty(q["brand"])
	req.Category = strings.TrimSpace(q.Get("category"))
	req.CategoryIn = nonEmpty(q["category_in"])
	req.Stock = nonEmpty(q["stock"])
	req.Shipping = nonEmpty(q["shipping"])

	var err error
	if req.MinPrice, err = parseFloatParam(q.Get("min_price"), "min_price"); err != nil {
		return nil, err
	}
	if req.MaxPrice, err = parseFloatParam(q.Get("max_price"), "max_price"); err != nil {
		return nil, err
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, fmt.Errorf("min_price must not exceed max_price")
	}
	if req.MinRating, err = parseFloatParam(q.Get("min_rating"), "min_rating"); err != nil {
		return nil, err
	}
	if req.MaxRating, err = parseFloatParam(q.Get("max_rating"), "max_rating"); err != nil {
		return nil, err
	}
	if req.MinRating != nil && req.MaxRating != nil && *req.MinRating > *req.MaxRating {
		return nil, fmt.Errorf("min_rating must not exceed max_rating")
	}

	for key, values := range q {
		if !strings.HasPrefix(key, attrParamPrefix) {
			continue
		}
		name := strings.TrimPrefix(key, attrParamPrefix)
		if name == "" {
			continue
		}
		vals := nonEmpty(values)
		if len(vals) == 0 {
			continue
		}
		if req.Attributes == nil {
			req.Attributes = make(map[string][]string)
		}
		req.Attributes[name] = vals
	}

	return req, nil
}

// parseFloatParam parses an optional non-negative float query parameter.
func parseFloatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s must be a valid number", name)
	}
	if f < 0 {
		return nil, fmt.Errorf("%s must not be negative", name)
	}
	return &f, nil
}

// nonEmpty trims each value and drops blanks.
func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
