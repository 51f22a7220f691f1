package engine

// Indexed field names shared by the query mapper, the facet builder, and
// the engine implementations.
const (
	FieldName         = "name"
	FieldBrandName    = "brand_name"
	FieldCategories   = "category_names"
	FieldDefaultPrice = "default_price"
	FieldRating       = "rating"
	FieldSalesCount   = "sales_count"
	FieldCreatedAt    = "created_at"
	FieldInStock      = "in_stock"
	FieldFreeShipping = "free_shipping"
	FieldScore        = "_score"

	// AttributeFieldPrefix prefixes dynamic attribute facet fields, e.g.
	// "attributes.color".
	AttributeFieldPrefix = "attributes."

	// CategorySeparator joins nested category path segments in indexed
	// category names, e.g. "Outdoor > Tents". Category filters match a
	// stored name exactly or as an ancestor of its path.
	CategorySeparator = " > "
)

// DefaultFacets is the set of facet fields aggregated on every search.
func DefaultFacets() []string {
	return []string{FieldCategories, FieldBrandName, FieldDefaultPrice, FieldInStock, FieldFreeShipping}
}
