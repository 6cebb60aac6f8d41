package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when metrics are constructed without a meter.
var ErrMeterNil = errors.New("meter must not be nil")

// InvoiceMetrics tracks invoice lifecycle activity: drafts created,
// finalizations (with outcome), and issued amounts.
type InvoiceMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	draftCreatedTotal    *Counter
	finalizedTotal       *Counter
	finalizeFailedTotal  *Counter
	finalizedAmountTotal *Counter
	finalizeDuration     *Histogram
}

// InvoiceMetricsConfig holds configuration for invoice metrics.
type InvoiceMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewInvoiceMetrics creates a new InvoiceMetrics instance.
func NewInvoiceMetrics(cfg InvoiceMetricsConfig) (*InvoiceMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	im := &InvoiceMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	im.draftCreatedTotal, err = NewCounter(
		cfg.Meter,
		"invoicing_draft_created_total",
		"Total number of draft invoices created",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	im.finalizedTotal, err = NewCounter(
		cfg.Meter,
		"invoicing_finalized_total",
		"Total number of invoices finalized",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	im.finalizeFailedTotal, err = NewCounter(
		cfg.Meter,
		"invoicing_finalize_failed_total",
		"Total number of failed finalization attempts",
		"{attempts}",
	)
	if err != nil {
		return nil, err
	}

	im.finalizedAmountTotal, err = NewCounter(
		cfg.Meter,
		"invoicing_finalized_amount_total",
		"Total finalized invoice amount in agorot, VAT inclusive",
		"{agorot}",
	)
	if err != nil {
		return nil, err
	}

	im.finalizeDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "invoicing_finalize_duration_seconds",
		Description: "Duration of the finalization transaction",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return im, nil
}

// RecordDraftCreated records a created draft invoice.
func (im *InvoiceMetrics) RecordDraftCreated(ctx context.Context, businessID, documentType string) {
	im.draftCreatedTotal.Inc(ctx,
		AttrBusinessID.String(businessID),
		AttrDocumentType.String(documentType),
	)
}

// RecordFinalized records a successful finalization and its issued amount.
func (im *InvoiceMetrics) RecordFinalized(ctx context.Context, businessID, documentType, sequenceGroup string, totalAgorot int64, elapsed time.Duration) {
	attrs := []attribute.KeyValue{
		AttrBusinessID.String(businessID),
		AttrDocumentType.String(documentType),
		AttrSequenceGroup.String(sequenceGroup),
	}
	im.finalizedTotal.Inc(ctx, attrs...)
	im.finalizedAmountTotal.Add(ctx, totalAgorot, attrs...)
	im.finalizeDuration.RecordDuration(ctx, elapsed, attrs...)
}

// RecordFinalizeFailed records a rejected or failed finalization attempt.
func (im *InvoiceMetrics) RecordFinalizeFailed(ctx context.Context, businessID, errorCode string) {
	im.finalizeFailedTotal.Inc(ctx,
		AttrBusinessID.String(businessID),
		AttrErrorCode.String(errorCode),
	)
}
