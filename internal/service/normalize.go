package service

import (
	"math"

	"github.com/cartside/storefront-search/internal/domain"
)

// resolvePrice picks a document's display price from the available price
// sources in priority order: default price, nested price block, currency
// map, calculated price, retail price. The first present and finite source
// wins. The second return is false when no source yields a positive finite
// value; the price is then 0 and the caller emits a diagnostic.
func resolvePrice(d *domain.Document, currency string) (float64, bool) {
	candidates := make([]float64, 0, 5)

	if d.DefaultPrice != nil {
		candidates = append(candidates, *d.DefaultPrice)
	}
	if d.Prices != nil {
		candidates = append(candidates, d.Prices.Price.Value)
	}
	if v, ok := d.PricesByCurrency[currency]; ok {
		candidates = append(candidates, v)
	}
	if d.CalculatedPrice != nil {
		candidates = append(candidates, *d.CalculatedPrice)
	}
	if d.RetailPrice != nil {
		candidates = append(candidates, *d.RetailPrice)
	}

	for _, v := range candidates {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v <= 0 {
			// Resolved but unusable: normalize to the safe default.
			return 0, false
		}
		return v, true
	}

	return 0, false
}

// resolveImage picks a document's display image: explicit default image,
// then the thumbnail-flagged entry, then the first image, then a variant's
// image URL. Alt text falls back to the product name.
func resolveImage(d *domain.Document) *domain.ProductImage {
	if d.DefaultImage != nil && d.DefaultImage.URL != "" {
		return productImage(d.DefaultImage.URL, d.DefaultImage.AltText, d.Name)
	}

	for i := range d.Images {
		if d.Images[i].IsThumbnail && d.Images[i].URL != "" {
			return productImage(d.Images[i].URL, d.Images[i].AltText, d.Name)
		}
	}
	for i := range d.Images {
		if d.Images[i].URL != "" {
			return productImage(d.Images[i].URL, d.Images[i].AltText, d.Name)
		}
	}

	for i := range d.Variants {
		if d.Variants[i].ImageURL != "" {
			return productImage(d.Variants[i].ImageURL, "", d.Name)
		}
	}

	return nil
}

func productImage(url, alt, fallbackAlt string) *domain.ProductImage {
	if alt == "" {
		alt = fallbackAlt
	}
	return &domain.ProductImage{URL: url, Alt: alt}
}
