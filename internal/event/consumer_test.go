package event

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartside/storefront-search/internal/domain"
	"github.com/cartside/storefront-search/internal/engine/memory"
	"github.com/cartside/storefront-search/internal/facet"
	"github.com/cartside/storefront-search/internal/service"
	pkgkafka "github.com/cartside/storefront-search/pkg/kafka"
	"github.com/cartside/storefront-search/pkg/logger"
)

func newTestConsumer(t *testing.T) (*Consumer, *service.SearchService) {
	t.Helper()
	log := logger.NewWithWriter("event-test", "error", io.Discard)
	svc := service.NewSearchService(memory.New(), facet.NewBuilder(nil), "USD", "", log)
	return NewConsumer(svc, log), svc
}

func productEvent(t *testing.T, eventType string, data any) *pkgkafka.Event {
	t.Helper()
	evt, err := pkgkafka.NewEvent(eventType, "prod-1", "product", "catalog-service", data)
	require.NoError(t, err)
	return evt
}

func TestHandle_ProductCreatedIndexesProduct(t *testing.T) {
	consumer, svc := newTestConsumer(t)

	evt := productEvent(t, TopicProductCreated, ProductEventData{
		ID:        "prod-1",
		Name:      "Trail Backpack",
		BrandName: "Acme",
		Price:     79.99,
		Currency:  "USD",
		InStock:   true,
	})

	require.NoError(t, consumer.Handle(context.Background(), evt))

	result, err := svc.Search(context.Background(), &domain.SearchRequest{Term: "backpack", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalItems)
	assert.Equal(t, "Trail Backpack", result.Products[0].Name)
	assert.Equal(t, 79.99, result.Products[0].Price)
}

func TestHandle_ProductUpdatedReplacesDocument(t *testing.T) {
	consumer, svc := newTestConsumer(t)

	created := productEvent(t, TopicProductCreated, ProductEventData{
		ID: "prod-1", Name: "Old Name", Price: 10, Currency: "USD",
	})
	require.NoError(t, consumer.Handle(context.Background(), created))

	updated := productEvent(t, TopicProductUpdated, ProductEventData{
		ID: "prod-1", Name: "New Name", Price: 15, Currency: "USD",
	})
	require.NoError(t, consumer.Handle(context.Background(), updated))

	result, err := svc.Search(context.Background(), &domain.SearchRequest{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalItems)
	assert.Equal(t, "New Name", result.Products[0].Name)
}

func TestHandle_ProductDeletedRemovesDocument(t *testing.T) {
	consumer, svc := newTestConsumer(t)

	created := productEvent(t, TopicProductCreated, ProductEventData{
		ID: "prod-1", Name: "Doomed Product", Price: 10, Currency: "USD",
	})
	require.NoError(t, consumer.Handle(context.Background(), created))

	deleted := productEvent(t, TopicProductDeleted, ProductDeletedData{ID: "prod-1"})
	require.NoError(t, consumer.Handle(context.Background(), deleted))

	result, err := svc.Search(context.Background(), &domain.SearchRequest{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalItems)
}

func TestHandle_UnknownEventTypeIsIgnored(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	evt := productEvent(t, "storefront.product.archived", map[string]string{"id": "prod-1"})

	assert.NoError(t, consumer.Handle(context.Background(), evt))
}

func TestHandle_MalformedPayloadReturnsError(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	evt := &pkgkafka.Event{
		EventID:   "evt-1",
		EventType: TopicProductCreated,
		Data:      []byte(`{"id":`),
	}

	assert.Error(t, consumer.Handle(context.Background(), evt))
}
