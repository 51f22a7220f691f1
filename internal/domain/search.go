package domain

// Sort options for search results.
const (
	SortFeatured     = "featured"
	SortNewest       = "newest"
	SortBestSelling  = "best_selling"
	SortAToZ         = "a_to_z"
	SortZToA         = "z_to_a"
	SortBestReviewed = "best_reviewed"
	SortLowestPrice  = "lowest_price"
	SortHighestPrice = "highest_price"
	SortRelevance    = "relevance"
)

// ValidSortOptions returns the list of valid sort options.
func ValidSortOptions() []string {
	return []string{
		SortFeatured, SortNewest, SortBestSelling, SortAToZ, SortZToA,
		SortBestReviewed, SortLowestPrice, SortHighestPrice, SortRelevance,
	}
}

// IsValidSort checks whether the given sort string is a valid sort option.
func IsValidSort(sort string) bool {
	for _, s := range ValidSortOptions() {
		if s == sort {
			return true
		}
	}
	return false
}

// SearchRequest holds the caller-supplied filter state for one search.
// Absent or empty fields mean "no filter on this dimension", never
// "exclude everything".
type SearchRequest struct {
	Term  string `json:"term"`
	Page  int    `json:"page"` // zero-based
	Limit int    `json:"limit"`
	Sort  string `json:"sort"`

	Brand      []string `json:"brand,omitempty"`
	Category   string   `json:"category,omitempty"`
	CategoryIn []string `json:"category_in,omitempty"`

	MinPrice  *float64 `json:"min_price,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
	MaxRating *float64 `json:"max_rating,omitempty"`

	Stock    []string `json:"stock,omitempty"`
	Shipping []string `json:"shipping,omitempty"`

	// Attributes holds dynamic attribute filters keyed by attribute name
	// (from attr_<name> request parameters). Values within a key are
	// OR-combined; keys are AND-combined.
	Attributes map[string][]string `json:"attributes,omitempty"`
}

// Stock and shipping flag values recognized in SearchRequest lists.
const (
	StockInStock         = "in_stock"
	ShippingFreeShipping = "free_shipping"
)

// HasStockFlag reports whether the given flag appears in the stock list.
func (r *SearchRequest) HasStockFlag(flag string) bool {
	for _, s := range r.Stock {
		if s == flag {
			return true
		}
	}
	return false
}

// HasShippingFlag reports whether the given flag appears in the shipping list.
func (r *SearchRequest) HasShippingFlag(flag string) bool {
	for _, s := range r.Shipping {
		if s == flag {
			return true
		}
	}
	return false
}

// Facet kinds.
const (
	FacetKindCategory     = "category"
	FacetKindBrand        = "brand"
	FacetKindPrice        = "price"
	FacetKindAvailability = "availability"
	FacetKindAttribute    = "attribute"
)

// FacetValue is one selectable value within a FacetGroup. IsSelected is
// derived from the originating SearchRequest, never stored.
type FacetValue struct {
	Label      string       `json:"label"`
	Count      int          `json:"count"`
	IsSelected bool         `json:"isSelected"`
	Children   []FacetValue `json:"children,omitempty"`
}

// FacetGroup is one filterable dimension presented to the storefront UI.
type FacetGroup struct {
	Kind         string       `json:"kind"`
	Name         string       `json:"name"`
	DisplayCount int          `json:"displayCount"`
	IsCollapsed  bool         `json:"isCollapsed"`
	Values       []FacetValue `json:"values"`
}

// ProductImage is the resolved image for a normalized product.
type ProductImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Product is the normalized product shape handed to the storefront. It is
// identical regardless of which upstream source produced the hit.
type Product struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Brand string        `json:"brand,omitempty"`
	Price float64       `json:"price"`
	Image *ProductImage `json:"image,omitempty"`
}

// SearchResult is the pipeline's output, constructed once per request.
type SearchResult struct {
	TotalItems      int          `json:"totalItems"`
	HasNextPage     bool         `json:"hasNextPage"`
	HasPreviousPage bool         `json:"hasPreviousPage"`
	StartCursor     string       `json:"startCursor,omitempty"`
	EndCursor       string       `json:"endCursor,omitempty"`
	Products        []Product    `json:"products"`
	Facets          []FacetGroup `json:"facets"`
	TookMs          int64        `json:"took_ms"`
}
