package event

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/partner"
	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogPublisher_Publish(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewLogPublisher(zap.New(core))

	customer, err := partner.NewCustomer(uuid.New(), "Acme Ltd")
	require.NoError(t, err)
	events := customer.GetDomainEvents()
	require.Len(t, events, 1)

	publisher.Publish(context.Background(), events...)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "domain event", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, events[0].EventType(), fields["event_type"])
	assert.Equal(t, customer.ID.String(), fields["aggregate_id"])
	assert.Equal(t, customer.BusinessID.String(), fields["business_id"])
}

func TestLogPublisher_PublishNothing(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewLogPublisher(zap.New(core))

	publisher.Publish(context.Background())

	assert.Zero(t, logs.Len())
}

func TestPublishEvents_DrainsAggregate(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewLogPublisher(zap.New(core))

	customer, err := partner.NewCustomer(uuid.New(), "Acme Ltd")
	require.NoError(t, err)

	shared.PublishEvents(context.Background(), publisher, customer)

	assert.Equal(t, 1, logs.Len())
	assert.Empty(t, customer.GetDomainEvents(), "publishing must clear the aggregate's pending events")

	// A second drain finds nothing to publish
	shared.PublishEvents(context.Background(), publisher, customer)
	assert.Equal(t, 1, logs.Len())
}

func TestPublishEvents_NilPublisherClears(t *testing.T) {
	customer, err := partner.NewCustomer(uuid.New(), "Acme Ltd")
	require.NoError(t, err)

	shared.PublishEvents(context.Background(), nil, customer)

	assert.Empty(t, customer.GetDomainEvents())
}
