package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent("product.updated", "prod-1", "product", "catalog-service", productPayload{ID: "prod-1", Name: "Trail Tent"})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "product.updated", ev.EventType)
	assert.Equal(t, "prod-1", ev.AggregateID)
	assert.Equal(t, "product", ev.AggregateType)
	assert.Equal(t, 1, ev.Version)
	assert.Equal(t, "catalog-service", ev.Source)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestEvent_RoundTripPayload(t *testing.T) {
	ev, err := NewEvent("product.updated", "prod-2", "product", "catalog-service", productPayload{ID: "prod-2", Name: "Camp Stove"})
	require.NoError(t, err)

	ev.WithCorrelationID("corr-42").WithMetadata("origin", "seeder")

	raw, err := ev.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, "corr-42", decoded.CorrelationID)
	assert.Equal(t, "seeder", decoded.Metadata["origin"])

	var payload productPayload
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "Camp Stove", payload.Name)
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "storefront.product.updated", Topic("product", "updated"))
}
