package domain

import "time"

// Money is a priced amount in a single currency.
type Money struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency,omitempty"`
}

// PriceSet is the nested price block some catalog sources attach to a hit.
type PriceSet struct {
	Price Money `json:"price"`
}

// Image is one entry in a document's image list.
type Image struct {
	URL         string `json:"url"`
	AltText     string `json:"alt_text,omitempty"`
	IsThumbnail bool   `json:"is_thumbnail,omitempty"`
}

// Variant is a purchasable variation of a product. Only the fields the
// search pipeline consumes are indexed.
type Variant struct {
	ID       string `json:"id"`
	SKU      string `json:"sku,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Document is a product document as stored in the search index. Price
// information may arrive through any of several fields depending on the
// upstream catalog source; normalization resolves them in priority order.
type Document struct {
	ObjectID    string `json:"object_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	BrandName     string   `json:"brand_name,omitempty"`
	CategoryNames []string `json:"category_names,omitempty"`

	DefaultPrice     *float64           `json:"default_price,omitempty"`
	Prices           *PriceSet          `json:"prices,omitempty"`
	PricesByCurrency map[string]float64 `json:"prices_by_currency,omitempty"`
	CalculatedPrice  *float64           `json:"calculated_price,omitempty"`
	RetailPrice      *float64           `json:"retail_price,omitempty"`
	Currency         string             `json:"currency,omitempty"`

	DefaultImage *Image    `json:"default_image,omitempty"`
	Images       []Image   `json:"images,omitempty"`
	Variants     []Variant `json:"variants,omitempty"`

	InStock      bool    `json:"in_stock"`
	FreeShipping bool    `json:"free_shipping"`
	Rating       float64 `json:"rating"`
	SalesCount   int64   `json:"sales_count"`

	Attributes map[string]string `json:"attributes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
