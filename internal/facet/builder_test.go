package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartside/storefront-search/internal/domain"
	"github.com/cartside/storefront-search/internal/engine"
)

func floatPtr(v float64) *float64 { return &v }

func docPrice(d *domain.Document) (float64, bool) {
	if d.DefaultPrice != nil {
		return *d.DefaultPrice, true
	}
	return 0, false
}

func hit(brand string, price float64, categories ...string) domain.Document {
	return domain.Document{
		BrandName:     brand,
		DefaultPrice:  &price,
		CategoryNames: categories,
		InStock:       true,
	}
}

func findGroup(t *testing.T, groups []domain.FacetGroup, name string) domain.FacetGroup {
	t.Helper()
	for _, g := range groups {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("facet group %q not found in %+v", name, groups)
	return domain.FacetGroup{}
}

func TestTally_BrandCounts(t *testing.T) {
	b := NewBuilder(nil)

	hits := []domain.Document{
		hit("X", 10, "Camping"),
		hit("X", 20, "Camping"),
		hit("Y", 30, "Hiking"),
	}

	counts := b.Tally(hits, docPrice)
	groups := b.Build(&domain.SearchRequest{}, counts)

	brand := findGroup(t, groups, "Brand")
	require.Len(t, brand.Values, 2)
	assert.Equal(t, "X", brand.Values[0].Label)
	assert.Equal(t, 2, brand.Values[0].Count)
	assert.Equal(t, "Y", brand.Values[1].Label)
	assert.Equal(t, 1, brand.Values[1].Count)
}

func TestTally_CountsSumToHitsCarryingValue(t *testing.T) {
	b := NewBuilder(nil)

	hits := []domain.Document{
		hit("Acme", 10, "Camping"),
		hit("Acme", 20, "Camping", "Hiking"),
		hit("", 30, "Hiking"), // blank brand skipped
	}

	counts := b.Tally(hits, docPrice)
	groups := b.Build(&domain.SearchRequest{}, counts)

	brand := findGroup(t, groups, "Brand")
	total := 0
	for _, v := range brand.Values {
		total += v.Count
	}
	assert.Equal(t, 2, total)

	category := findGroup(t, groups, "Category")
	byLabel := map[string]int{}
	for _, v := range category.Values {
		byLabel[v.Label] = v.Count
	}
	assert.Equal(t, 2, byLabel["Camping"])
	assert.Equal(t, 2, byLabel["Hiking"])
}

func TestTally_SkipsShopAllSentinel(t *testing.T) {
	b := NewBuilder(nil)

	hits := []domain.Document{
		hit("Acme", 10, CategoryShopAll, "Camping"),
		hit("Acme", 20, CategoryShopAll),
	}

	counts := b.Tally(hits, docPrice)
	groups := b.Build(&domain.SearchRequest{}, counts)

	category := findGroup(t, groups, "Category")
	require.Len(t, category.Values, 1)
	assert.Equal(t, "Camping", category.Values[0].Label)
}

func TestBuild_SelectionReflectsRequest(t *testing.T) {
	b := NewBuilder(nil)

	counts := engine.FacetCounts{
		engine.FieldBrandName: {"Acme": 3, "Globex": 2, "Initech": 1},
	}

	groups := b.Build(&domain.SearchRequest{Brand: []string{"Acme"}}, counts)

	brand := findGroup(t, groups, "Brand")
	for _, v := range brand.Values {
		if v.Label == "Acme" {
			assert.True(t, v.IsSelected, "Acme should be selected")
		} else {
			assert.False(t, v.IsSelected, "%s should not be selected", v.Label)
		}
	}
}

func TestBuild_PriceBands(t *testing.T) {
	b := NewBuilder(nil)

	counts := engine.FacetCounts{
		engine.FieldDefaultPrice: {
			"9.99": 2, // <$25
			"25":   1, // $25 - $50 (inclusive lower bound)
			"49.5": 1,
			"75":   3, // $50 - $100
			"150":  1, // >$100
			"junk": 9, // unparsable, dropped
		},
	}

	groups := b.Build(&domain.SearchRequest{}, counts)
	price := findGroup(t, groups, "Price")

	require.Len(t, price.Values, 4)
	assert.Equal(t, domain.FacetValue{Label: "<$25", Count: 2}, price.Values[0])
	assert.Equal(t, domain.FacetValue{Label: "$25 - $50", Count: 2}, price.Values[1])
	assert.Equal(t, domain.FacetValue{Label: "$50 - $100", Count: 3}, price.Values[2])
	assert.Equal(t, domain.FacetValue{Label: ">$100", Count: 1}, price.Values[3])
}

func TestBuild_ConfigurableBands(t *testing.T) {
	b := NewBuilder([]float64{10, 1000})

	counts := engine.FacetCounts{
		engine.FieldDefaultPrice: {"5": 1, "500": 2, "2000": 3},
	}

	groups := b.Build(&domain.SearchRequest{}, counts)
	price := findGroup(t, groups, "Price")

	require.Len(t, price.Values, 3)
	assert.Equal(t, "<$10", price.Values[0].Label)
	assert.Equal(t, "$10 - $1000", price.Values[1].Label)
	assert.Equal(t, ">$1000", price.Values[2].Label)
}

func TestBuild_PriceBandSelection(t *testing.T) {
	b := NewBuilder(nil)

	counts := engine.FacetCounts{
		engine.FieldDefaultPrice: {"30": 1, "150": 1},
	}

	req := &domain.SearchRequest{MinPrice: floatPtr(25), MaxPrice: floatPtr(50)}
	groups := b.Build(req, counts)
	price := findGroup(t, groups, "Price")

	require.Len(t, price.Values, 2)
	assert.Equal(t, "$25 - $50", price.Values[0].Label)
	assert.True(t, price.Values[0].IsSelected)
	assert.False(t, price.Values[1].IsSelected)
}

func TestBuild_OmitsEmptyGroups(t *testing.T) {
	b := NewBuilder(nil)

	// Counts with nothing usable: blank brand, zero counts.
	counts := engine.FacetCounts{
		engine.FieldBrandName:  {"": 5, "Ghost": 0},
		engine.FieldCategories: {},
	}

	groups := b.Build(&domain.SearchRequest{}, counts)
	for _, g := range groups {
		assert.NotEmpty(t, g.Values, "group %s must not be empty", g.Name)
	}
	assert.Empty(t, groups)
}

func TestBuild_AvailabilityGroup(t *testing.T) {
	b := NewBuilder(nil)

	counts := engine.FacetCounts{
		engine.FieldInStock: {"true": 7, "false": 3},
	}

	groups := b.Build(&domain.SearchRequest{Stock: []string{"in_stock"}}, counts)
	avail := findGroup(t, groups, "Availability")

	require.Len(t, avail.Values, 2)
	assert.Equal(t, "In Stock", avail.Values[0].Label)
	assert.Equal(t, 7, avail.Values[0].Count)
	assert.True(t, avail.Values[0].IsSelected)
	assert.Equal(t, "Out of Stock", avail.Values[1].Label)
	assert.False(t, avail.Values[1].IsSelected)
}

func TestBuild_ShippingGroup(t *testing.T) {
	b := NewBuilder(nil)

	counts := engine.FacetCounts{
		engine.FieldFreeShipping: {"true": 4, "false": 6},
	}

	groups := b.Build(&domain.SearchRequest{Shipping: []string{"free_shipping"}}, counts)
	shipping := findGroup(t, groups, "Shipping")

	require.Len(t, shipping.Values, 1)
	assert.Equal(t, "Free Shipping", shipping.Values[0].Label)
	assert.Equal(t, 4, shipping.Values[0].Count)
	assert.True(t, shipping.Values[0].IsSelected)
}

func TestBuild_AttributeGroups(t *testing.T) {
	b := NewBuilder(nil)

	counts := engine.FacetCounts{
		"attributes.color": {"red": 3, "blue": 1},
		"attributes.size":  {"42": 2},
	}

	req := &domain.SearchRequest{Attributes: map[string][]string{"color": {"blue"}}}
	groups := b.Build(req, counts)

	color := findGroup(t, groups, "color")
	assert.Equal(t, domain.FacetKindAttribute, color.Kind)
	require.Len(t, color.Values, 2)
	assert.Equal(t, "red", color.Values[0].Label)
	assert.False(t, color.Values[0].IsSelected)
	assert.Equal(t, "blue", color.Values[1].Label)
	assert.True(t, color.Values[1].IsSelected)

	size := findGroup(t, groups, "size")
	require.Len(t, size.Values, 1)
}

func TestBuild_NestedCategories(t *testing.T) {
	b := NewBuilder(nil)

	counts := engine.FacetCounts{
		engine.FieldCategories: {
			"Outdoor":         5,
			"Outdoor > Tents": 2,
			"Outdoor > Packs": 1,
			"Kitchen":         3,
		},
	}

	groups := b.Build(&domain.SearchRequest{CategoryIn: []string{"Outdoor > Tents"}}, counts)
	category := findGroup(t, groups, "Category")

	require.Len(t, category.Values, 2)
	assert.Equal(t, "Kitchen", category.Values[0].Label)

	outdoor := category.Values[1]
	assert.Equal(t, "Outdoor", outdoor.Label)
	assert.Equal(t, 5, outdoor.Count)
	require.Len(t, outdoor.Children, 2)
	assert.Equal(t, "Outdoor > Packs", outdoor.Children[0].Label)
	assert.Equal(t, "Outdoor > Tents", outdoor.Children[1].Label)
	assert.True(t, outdoor.Children[1].IsSelected)
	assert.False(t, outdoor.Children[0].IsSelected)
}

func TestTally_SkipsUnresolvablePrices(t *testing.T) {
	b := NewBuilder(nil)

	hits := []domain.Document{
		hit("Acme", 10, "Camping"),
		{BrandName: "Acme", CategoryNames: []string{"Camping"}}, // no price at all
	}

	counts := b.Tally(hits, docPrice)
	groups := b.Build(&domain.SearchRequest{}, counts)

	price := findGroup(t, groups, "Price")
	require.Len(t, price.Values, 1)
	assert.Equal(t, "<$25", price.Values[0].Label)
	assert.Equal(t, 1, price.Values[0].Count)

	// The unpriced hit still counts everywhere else.
	brand := findGroup(t, groups, "Brand")
	assert.Equal(t, 2, brand.Values[0].Count)
}
