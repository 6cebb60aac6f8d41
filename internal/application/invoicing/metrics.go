package invoicing

import (
	"context"
	"time"
)

// MetricsRecorder receives invoice lifecycle events for instrumentation.
// The zero value of a service records nothing; wiring a recorder is optional.
type MetricsRecorder interface {
	RecordDraftCreated(ctx context.Context, businessID, documentType string)
	RecordFinalized(ctx context.Context, businessID, documentType, sequenceGroup string, totalAgorot int64, elapsed time.Duration)
	RecordFinalizeFailed(ctx context.Context, businessID, errorCode string)
}
