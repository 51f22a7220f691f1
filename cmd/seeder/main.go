// Package main implements a standalone seed tool that publishes synthetic
// product events to Kafka so a locally running search service indexes a
// realistic catalog for development.
//
// Run: go run ./cmd/seeder
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/cartside/storefront-search/internal/event"
	pkgkafka "github.com/cartside/storefront-search/pkg/kafka"
	"github.com/cartside/storefront-search/pkg/logger"
)

const defaultProductCount = 500

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var brands = []string{
	"Northwind", "Acme Outdoors", "Globex", "Summit Gear", "Trailhead",
	"Basecamp Co", "Ridgeline", "Pinefield",
}

var categories = []string{
	"Tents", "Backpacks", "Sleeping Bags", "Footwear", "Cookware",
	"Lighting", "Apparel", "Accessories",
}

var nouns = []string{
	"Tent", "Backpack", "Sleeping Bag", "Boot", "Stove", "Lantern",
	"Jacket", "Trekking Pole", "Water Filter", "Hammock",
}

var adjectives = []string{
	"Alpine", "Trail", "Summit", "Ridge", "Canyon", "Glacier", "Forest",
	"River", "Storm", "Dawn",
}

var colors = []string{"Red", "Blue", "Green", "Black", "Orange", "Grey"}
var sizes = []string{"S", "M", "L", "XL"}

func main() {
	log := logger.New("search-seeder", getEnv("LOG_LEVEL", "info"))

	brokersEnv := getEnv("KAFKA_BROKERS", "localhost:9092")
	brokers := strings.Split(brokersEnv, ",")

	count := defaultProductCount
	if v := getEnv("SEED_PRODUCT_COUNT", ""); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &count); err != nil || count < 1 {
			log.Error("SEED_PRODUCT_COUNT must be a positive integer", slog.String("value", v))
			os.Exit(1)
		}
	}

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(brokers), log)
	defer func() { _ = producer.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := producer.Ping(ctx); err != nil {
		log.Error("kafka not reachable", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(42)) // deterministic catalog across re-runs
	published := 0
	for i := 0; i < count; i++ {
		data := syntheticProduct(rng, i)

		evt, err := pkgkafka.NewEvent(event.TopicProductCreated, data.ID, "product", "search-seeder", data)
		if err != nil {
			log.Error("build event", slog.String("error", err.Error()))
			os.Exit(1)
		}

		if err := producer.Publish(ctx, event.TopicProductCreated, evt); err != nil {
			log.Error("publish event",
				slog.String("product_id", data.ID),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		published++

		if published%100 == 0 {
			log.Info("seed progress", slog.Int("published", published))
		}
	}

	log.Info("seed complete",
		slog.Int("published", published),
		slog.Any("brokers", brokers),
	)
}

// syntheticProduct builds one deterministic pseudo-random product payload.
func syntheticProduct(rng *rand.Rand, i int) event.ProductEventData {
	brand := brands[rng.Intn(len(brands))]
	category := categories[rng.Intn(len(categories))]
	name := fmt.Sprintf("%s %s %d",
		adjectives[rng.Intn(len(adjectives))],
		nouns[rng.Intn(len(nouns))],
		i,
	)

	price := float64(rng.Intn(29000)+500) / 100 // $5.00 .. $295.00

	return event.ProductEventData{
		ID:           fmt.Sprintf("seed-%05d", i),
		Name:         name,
		Description:  fmt.Sprintf("Seeded %s from %s for local development.", strings.ToLower(category), brand),
		BrandName:    brand,
		Categories:   []string{category},
		Price:        price,
		Currency:     "USD",
		ImageURL:     fmt.Sprintf("https://cdn.cartside.dev/products/seed-%05d.jpg", i),
		InStock:      rng.Intn(10) != 0, // roughly one in ten is out of stock
		FreeShipping: price >= 50,
		Rating:       float64(rng.Intn(31)+20) / 10, // 2.0 .. 5.0
		SalesCount:   int64(rng.Intn(5000)),
		Attributes: map[string]string{
			"color": colors[rng.Intn(len(colors))],
			"size":  sizes[rng.Intn(len(sizes))],
		},
	}
}
