// Package facet derives storefront filter controls from search results.
// One builder serves both count sources: the engine's native facet counts
// when present, and a local tally recomputed from the hit list when the
// engine returns no facet data.
package facet

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cartside/storefront-search/internal/domain"
	"github.com/cartside/storefront-search/internal/engine"
)

// CategoryShopAll is the storefront's "show everything" sentinel category.
// It appears on most documents and is not a real filter dimension, so
// tallies skip it.
const CategoryShopAll = "Shop All"

// categorySeparator splits nested category names ("Outdoor > Tents") into
// one level of parent and child facet values. Child labels keep the full
// path so every offered label is usable as a category filter verbatim.
const categorySeparator = engine.CategorySeparator

// defaultBands are the price display bands used when none are configured.
var defaultBands = []float64{25, 50, 100}

const defaultDisplayCount = 10

// Builder turns facet counts into FacetGroups. Safe for concurrent use.
type Builder struct {
	bands []float64
}

// NewBuilder creates a facet builder with the given ascending price display
// bands. Empty bands fall back to the defaults (<25 / 25-50 / 50-100 / >100).
func NewBuilder(bands []float64) *Builder {
	if len(bands) == 0 {
		bands = defaultBands
	}
	return &Builder{bands: bands}
}

// Tally recomputes facet counts by scanning the raw hit list. The price
// function resolves each hit's display price so local bucketing matches
// what the storefront renders; hits whose price cannot be resolved are
// left out of the price counts, matching the engine's native behavior
// for documents without an indexed price.
func (b *Builder) Tally(hits []domain.Document, price func(*domain.Document) (float64, bool)) engine.FacetCounts {
	counts := engine.FacetCounts{}

	bump := func(field, value string) {
		m := counts[field]
		if m == nil {
			m = make(map[string]int)
			counts[field] = m
		}
		m[value]++
	}

	for i := range hits {
		hit := &hits[i]

		for _, cat := range hit.CategoryNames {
			if cat == "" || cat == CategoryShopAll {
				continue
			}
			bump(engine.FieldCategories, cat)
		}

		if hit.BrandName != "" {
			bump(engine.FieldBrandName, hit.BrandName)
		}

		if p, ok := price(hit); ok {
			bump(engine.FieldDefaultPrice, strconv.FormatFloat(p, 'f', -1, 64))
		}
		bump(engine.FieldInStock, strconv.FormatBool(hit.InStock))
		bump(engine.FieldFreeShipping, strconv.FormatBool(hit.FreeShipping))

		for name, value := range hit.Attributes {
			if value != "" {
				bump(engine.AttributeFieldPrefix+name, value)
			}
		}
	}

	return counts
}

// Build constructs the FacetGroup list from a count source. Selection state
// is derived from the originating request. Groups that would carry no
// values are omitted entirely.
func (b *Builder) Build(req *domain.SearchRequest, counts engine.FacetCounts) []domain.FacetGroup {
	var groups []domain.FacetGroup

	if g, ok := b.categoryGroup(req, counts[engine.FieldCategories]); ok {
		groups = append(groups, g)
	}
	if g, ok := b.brandGroup(req, counts[engine.FieldBrandName]); ok {
		groups = append(groups, g)
	}
	if g, ok := b.priceGroup(req, counts[engine.FieldDefaultPrice]); ok {
		groups = append(groups, g)
	}
	if g, ok := b.availabilityGroup(req, counts[engine.FieldInStock]); ok {
		groups = append(groups, g)
	}
	if g, ok := b.shippingGroup(req, counts[engine.FieldFreeShipping]); ok {
		groups = append(groups, g)
	}
	groups = append(groups, b.attributeGroups(req, counts)...)

	return groups
}

func (b *Builder) categoryGroup(req *domain.SearchRequest, counts map[string]int) (domain.FacetGroup, bool) {
	type node struct {
		count    int
		children map[string]int
	}
	tree := make(map[string]*node)

	selected := func(label string) bool {
		if label == req.Category {
			return true
		}
		for _, c := range req.CategoryIn {
			if c == label {
				return true
			}
		}
		return false
	}

	for label, count := range counts {
		if label == "" || label == CategoryShopAll || count <= 0 {
			continue
		}
		parent, child, nested := strings.Cut(label, categorySeparator)
		n := tree[parent]
		if n == nil {
			n = &node{children: make(map[string]int)}
			tree[parent] = n
		}
		if nested {
			n.children[child] += count
		} else {
			n.count += count
		}
	}

	if len(tree) == 0 {
		return domain.FacetGroup{}, false
	}

	parents := make([]string, 0, len(tree))
	for p := range tree {
		parents = append(parents, p)
	}
	sort.Strings(parents)

	values := make([]domain.FacetValue, 0, len(parents))
	for _, p := range parents {
		n := tree[p]

		count := n.count
		var children []domain.FacetValue
		if len(n.children) > 0 {
			names := make([]string, 0, len(n.children))
			for c := range n.children {
				names = append(names, c)
			}
			sort.Strings(names)
			for _, c := range names {
				full := p + categorySeparator + c
				children = append(children, domain.FacetValue{
					Label:      full,
					Count:      n.children[c],
					IsSelected: selected(full),
				})
			}
			// A parent seen only through its children still counts every
			// document under it.
			if count == 0 {
				for _, c := range children {
					count += c.Count
				}
			}
		}

		values = append(values, domain.FacetValue{
			Label:      p,
			Count:      count,
			IsSelected: selected(p),
			Children:   children,
		})
	}

	return domain.FacetGroup{
		Kind:         domain.FacetKindCategory,
		Name:         "Category",
		DisplayCount: defaultDisplayCount,
		Values:       values,
	}, true
}

func (b *Builder) brandGroup(req *domain.SearchRequest, counts map[string]int) (domain.FacetGroup, bool) {
	selected := make(map[string]bool, len(req.Brand))
	for _, name := range req.Brand {
		selected[name] = true
	}

	values := valuesByCount(counts, func(label string) bool { return selected[label] })
	if len(values) == 0 {
		return domain.FacetGroup{}, false
	}

	return domain.FacetGroup{
		Kind:         domain.FacetKindBrand,
		Name:         "Brand",
		DisplayCount: defaultDisplayCount,
		Values:       values,
	}, true
}

// priceGroup buckets per-price counts into the configured display bands.
// The engine reports counts keyed by raw price values; the local tally
// produces the same shape, so both modes share this bucketing.
func (b *Builder) priceGroup(req *domain.SearchRequest, counts map[string]int) (domain.FacetGroup, bool) {
	bucketed := make([]int, len(b.bands)+1)
	for label, count := range counts {
		price, err := strconv.ParseFloat(label, 64)
		if err != nil || count <= 0 {
			continue
		}
		bucketed[b.bandIndex(price)] += count
	}

	values := make([]domain.FacetValue, 0, len(bucketed))
	for i, count := range bucketed {
		if count == 0 {
			continue
		}
		lo, hi := b.bandBounds(i)
		values = append(values, domain.FacetValue{
			Label:      b.bandLabel(i),
			Count:      count,
			IsSelected: bandSelected(req, lo, hi),
		})
	}

	if len(values) == 0 {
		return domain.FacetGroup{}, false
	}

	return domain.FacetGroup{
		Kind:         domain.FacetKindPrice,
		Name:         "Price",
		DisplayCount: len(values),
		Values:       values,
	}, true
}

func (b *Builder) bandIndex(price float64) int {
	for i, limit := range b.bands {
		if price < limit {
			return i
		}
	}
	return len(b.bands)
}

// bandBounds returns the inclusive-lower, exclusive-upper bounds for a
// band; hi is nil for the open-ended top band and lo is nil for the bottom.
func (b *Builder) bandBounds(i int) (lo, hi *float64) {
	if i > 0 {
		lo = &b.bands[i-1]
	}
	if i < len(b.bands) {
		hi = &b.bands[i]
	}
	return lo, hi
}

func (b *Builder) bandLabel(i int) string {
	lo, hi := b.bandBounds(i)
	switch {
	case lo == nil:
		return "<$" + formatAmount(*hi)
	case hi == nil:
		return ">$" + formatAmount(*lo)
	default:
		return "$" + formatAmount(*lo) + " - $" + formatAmount(*hi)
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// bandSelected reports whether the request's price range is exactly this
// display band.
func bandSelected(req *domain.SearchRequest, lo, hi *float64) bool {
	if req.MinPrice == nil && req.MaxPrice == nil {
		return false
	}
	boundsEqual := func(a, b *float64) bool {
		if a == nil || b == nil {
			return a == nil && b == nil
		}
		return *a == *b
	}
	return boundsEqual(req.MinPrice, lo) && boundsEqual(req.MaxPrice, hi)
}

func (b *Builder) availabilityGroup(req *domain.SearchRequest, counts map[string]int) (domain.FacetGroup, bool) {
	var values []domain.FacetValue
	if n := counts["true"]; n > 0 {
		values = append(values, domain.FacetValue{
			Label:      "In Stock",
			Count:      n,
			IsSelected: req.HasStockFlag(domain.StockInStock),
		})
	}
	if n := counts["false"]; n > 0 {
		values = append(values, domain.FacetValue{
			Label: "Out of Stock",
			Count: n,
		})
	}

	if len(values) == 0 {
		return domain.FacetGroup{}, false
	}

	return domain.FacetGroup{
		Kind:         domain.FacetKindAvailability,
		Name:         "Availability",
		DisplayCount: len(values),
		Values:       values,
	}, true
}

func (b *Builder) shippingGroup(req *domain.SearchRequest, counts map[string]int) (domain.FacetGroup, bool) {
	n := counts["true"]
	if n == 0 {
		return domain.FacetGroup{}, false
	}

	return domain.FacetGroup{
		Kind:         domain.FacetKindAvailability,
		Name:         "Shipping",
		DisplayCount: 1,
		Values: []domain.FacetValue{{
			Label:      "Free Shipping",
			Count:      n,
			IsSelected: req.HasShippingFlag(domain.ShippingFreeShipping),
		}},
	}, true
}

func (b *Builder) attributeGroups(req *domain.SearchRequest, counts engine.FacetCounts) []domain.FacetGroup {
	var names []string
	for field := range counts {
		if strings.HasPrefix(field, engine.AttributeFieldPrefix) {
			names = append(names, strings.TrimPrefix(field, engine.AttributeFieldPrefix))
		}
	}
	sort.Strings(names)

	var groups []domain.FacetGroup
	for _, name := range names {
		selected := make(map[string]bool, len(req.Attributes[name]))
		for _, v := range req.Attributes[name] {
			selected[v] = true
		}

		values := valuesByCount(counts[engine.AttributeFieldPrefix+name], func(label string) bool { return selected[label] })
		if len(values) == 0 {
			continue
		}

		groups = append(groups, domain.FacetGroup{
			Kind:         domain.FacetKindAttribute,
			Name:         name,
			DisplayCount: defaultDisplayCount,
			IsCollapsed:  true,
			Values:       values,
		})
	}
	return groups
}

// valuesByCount converts a count map into facet values ordered by count
// descending, then label ascending. Blank labels and zero counts are
// dropped.
func valuesByCount(counts map[string]int, isSelected func(string) bool) []domain.FacetValue {
	values := make([]domain.FacetValue, 0, len(counts))
	for label, count := range counts {
		if label == "" || count <= 0 {
			continue
		}
		values = append(values, domain.FacetValue{
			Label:      label,
			Count:      count,
			IsSelected: isSelected(label),
		})
	}

	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Label < values[j].Label
	})

	return values
}
