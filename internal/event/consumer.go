package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cartside/storefront-search/internal/service"
	pkgkafka "github.com/cartside/storefront-search/pkg/kafka"
)

// Kafka topic constants for product domain events consumed by the search service.
const (
	TopicProductCreated = "storefront.product.created"
	TopicProductUpdated = "storefront.product.updated"
	TopicProductDeleted = "storefront.product.deleted"
)

// ProductEventData represents the payload from product domain events.
type ProductEventData struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	BrandName    string            `json:"brand_name"`
	Categories   []string          `json:"categories"`
	Price        float64           `json:"price"`
	Currency     string            `json:"currency"`
	ImageURL     string            `json:"image_url"`
	ImageAlt     string            `json:"image_alt"`
	InStock      bool              `json:"in_stock"`
	FreeShipping bool              `json:"free_shipping"`
	Rating       float64           `json:"rating"`
	SalesCount   int64             `json:"sales_count"`
	Attributes   map[string]string `json:"attributes"`
}

// ProductDeletedData represents the payload from a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// Consumer handles Kafka events related to product changes for search indexing.
type Consumer struct {
	searchService *service.SearchService
	logger        *slog.Logger
}

// NewConsumer creates a new event consumer for the search service.
func NewConsumer(searchService *service.SearchService, logger *slog.Logger) *Consumer {
	return &Consumer{
		searchService: searchService,
		logger:        logger,
	}
}

// Handle processes a Kafka event based on its type.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicProductCreated:
		return c.handleProductUpserted(ctx, event, "indexed product from created event")
	case TopicProductUpdated:
		return c.handleProductUpserted(ctx, event, "re-indexed product from updated event")
	case TopicProductDeleted:
		return c.handleProductDeleted(ctx, event)
	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

// handleProductUpserted indexes a created or updated product. Both events
// carry the full product payload, so the handling is identical.
func (c *Consumer) handleProductUpserted(ctx context.Context, event *pkgkafka.Event, msg string) error {
	var data ProductEventData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	input := &service.IndexProductInput{
		ID:            data.ID,
		Name:          data.Name,
		Description:   data.Description,
		BrandName:     data.BrandName,
		CategoryNames: data.Categories,
		Price:         data.Price,
		Currency:      data.Currency,
		ImageURL:      data.ImageURL,
		ImageAlt:      data.ImageAlt,
		InStock:       data.InStock,
		FreeShipping:  data.FreeShipping,
		Rating:        data.Rating,
		SalesCount:    data.SalesCount,
		Attributes:    data.Attributes,
	}

	if err := c.searchService.IndexProduct(ctx, input); err != nil {
		return fmt.Errorf("index product from %s event: %w", event.EventType, err)
	}

	c.logger.InfoContext(ctx, msg,
		slog.String("product_id", data.ID),
	)

	return nil
}

// handleProductDeleted removes a deleted product from the index.
func (c *Consumer) handleProductDeleted(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductDeletedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal product.deleted data: %w", err)
	}

	if err := c.searchService.DeleteProduct(ctx, data.ID); err != nil {
		return fmt.Errorf("delete product from deleted event: %w", err)
	}

	c.logger.InfoContext(ctx, "deleted product from deleted event",
		slog.String("product_id", data.ID),
	)

	return nil
}
