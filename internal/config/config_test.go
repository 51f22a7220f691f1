package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8010, cfg.HTTPPort)
	assert.Equal(t, "http://localhost:9200", cfg.ElasticsearchURL)
	assert.Equal(t, "storefront_products", cfg.ElasticsearchIndex)
	assert.Equal(t, "elasticsearch", cfg.SearchEngine)
	assert.Equal(t, "http://localhost:8080", cfg.CatalogServiceURL)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, []float64{25, 50, 100}, cfg.PriceBands)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("SEARCH_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidSearchEngine(t *testing.T) {
	t.Setenv("SEARCH_ENGINE", "solr")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search engine")
}

func TestLoad_CustomSearchEngine(t *testing.T) {
	t.Setenv("SEARCH_ENGINE", "memory")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.SearchEngine)
}

func TestLoad_CustomElasticsearchURL(t *testing.T) {
	t.Setenv("ELASTICSEARCH_URL", "http://es.prod:9200")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://es.prod:9200", cfg.ElasticsearchURL)
}

func TestLoad_CustomPriceBands(t *testing.T) {
	t.Setenv("SEARCH_PRICE_BANDS", "10,20,30,40")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40}, cfg.PriceBands)
}

func TestLoad_NonAscendingPriceBands(t *testing.T) {
	t.Setenv("SEARCH_PRICE_BANDS", "50,25,100")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "strictly ascending")
}
