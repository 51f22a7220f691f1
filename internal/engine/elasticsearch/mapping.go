package elasticsearch

// DefaultIndexName is the default Elasticsearch index used for product documents.
const DefaultIndexName = "storefront_products"

// buildIndexMapping returns the full JSON mapping for the products index.
// Facet dimensions (brand, categories, stock, shipping, attributes) are
// keyword or boolean fields so terms filters and aggregations operate on
// exact values; free-text fields carry an edge-ngram autocomplete subfield.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "autocomplete_analyzer": {
          "type": "custom",
          "tokenizer": "autocomplete_tokenizer",
          "filter": ["lowercase"]
        },
        "autocomplete_search": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase"]
        }
      },
      "tokenizer": {
        "autocomplete_tokenizer": {
          "type": "edge_ngram",
          "min_gram": 2,
          "max_gram": 20,
          "token_chars": ["letter", "digit"]
        }
      }
    }
  },
  "mappings": {
    "dynamic_templates": [
      {
        "attributes_as_keywords": {
          "path_match": "attributes.*",
          "mapping": { "type": "keyword", "ignore_above": 256 }
        }
      }
    ],
    "properties": {
      "object_id":          { "type": "keyword" },
      "name":               { "type": "text", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 }, "autocomplete": { "type": "text", "analyzer": "autocomplete_analyzer", "search_analyzer": "autocomplete_search" } } },
      "description":        { "type": "text" },
      "brand_name":         { "type": "keyword" },
      "category_names":     { "type": "keyword" },
      "default_price":      { "type": "double" },
      "prices":             { "type": "object", "enabled": false },
      "prices_by_currency": { "type": "object", "enabled": false },
      "calculated_price":   { "type": "double" },
      "retail_price":       { "type": "double" },
      "currency":           { "type": "keyword" },
      "default_image":      { "type": "object", "enabled": false },
      "images":             { "type": "object", "enabled": false },
      "variants":           { "type": "object", "enabled": false },
      "in_stock":           { "type": "boolean" },
      "free_shipping":      { "type": "boolean" },
      "rating":             { "type": "float" },
      "sales_count":        { "type": "long" },
      "created_at":         { "type": "date" },
      "updated_at":         { "type": "date" }
    }
  }
}`
}
