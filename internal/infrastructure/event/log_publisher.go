// Package event delivers domain events to their observers. The only delivery
// target is the structured log; the system records events on aggregates but
// has no consumer that would warrant an outbox.
package event

import (
	"context"

	"github.com/invoicing/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LogPublisher writes every published domain event to the structured log.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a new LogPublisher
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs each event with its identifying fields.
func (p *LogPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) {
	for _, e := range events {
		p.logger.Info("domain event",
			zap.String("event_type", e.EventType()),
			zap.String("event_id", e.EventID().String()),
			zap.String("aggregate_type", e.AggregateType()),
			zap.String("aggregate_id", e.AggregateID().String()),
			zap.String("business_id", e.BusinessID().String()),
			zap.Time("occurred_at", e.OccurredAt()))
	}
}

// Ensure LogPublisher implements EventPublisher
var _ shared.EventPublisher = (*LogPublisher)(nil)
