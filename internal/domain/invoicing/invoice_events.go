package invoicing

import (
	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated   = "InvoiceCreated"
	EventTypeInvoiceFinalized = "InvoiceFinalized"
	EventTypeInvoiceDeleted   = "InvoiceDeleted"
)

// InvoiceCreatedEvent is raised when a new draft invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID    uuid.UUID  `json:"invoice_id"`
	DocumentType string     `json:"document_type"`
	CustomerID   *uuid.UUID `json:"customer_id,omitempty"`
	InvoiceDate  string     `json:"invoice_date"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(invoice *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, invoice.ID, invoice.BusinessID),
		InvoiceID:       invoice.ID,
		DocumentType:    invoice.DocumentType.String(),
		CustomerID:      invoice.CustomerID,
		InvoiceDate:     invoice.InvoiceDate,
	}
}

// EventType returns the event type name
func (e *InvoiceCreatedEvent) EventType() string {
	return EventTypeInvoiceCreated
}

// InvoiceFinalizedEvent is raised when a draft invoice becomes a numbered
// legal document
type InvoiceFinalizedEvent struct {
	shared.BaseDomainEvent
	InvoiceID      uuid.UUID `json:"invoice_id"`
	DocumentType   string    `json:"document_type"`
	SequenceGroup  string    `json:"sequence_group"`
	SequenceNumber int64     `json:"sequence_number"`
	FullNumber     string    `json:"full_number"`
	Total          int64     `json:"total"`
	VATTotal       int64     `json:"vat_total"`
	InvoiceDate    string    `json:"invoice_date"`
}

// NewInvoiceFinalizedEvent creates a new InvoiceFinalizedEvent
func NewInvoiceFinalizedEvent(invoice *Invoice) *InvoiceFinalizedEvent {
	event := &InvoiceFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceFinalized, AggregateTypeInvoice, invoice.ID, invoice.BusinessID),
		InvoiceID:       invoice.ID,
		DocumentType:    invoice.DocumentType.String(),
		Total:           invoice.Total,
		VATTotal:        invoice.VATTotal,
		InvoiceDate:     invoice.InvoiceDate,
	}
	if invoice.SequenceGroup != nil {
		event.SequenceGroup = invoice.SequenceGroup.String()
	}
	if invoice.SequenceNumber != nil {
		event.SequenceNumber = *invoice.SequenceNumber
	}
	if invoice.FullNumber != nil {
		event.FullNumber = *invoice.FullNumber
	}
	return event
}

// EventType returns the event type name
func (e *InvoiceFinalizedEvent) EventType() string {
	return EventTypeInvoiceFinalized
}

// InvoiceDeletedEvent is raised when a draft invoice is deleted
type InvoiceDeletedEvent struct {
	shared.BaseDomainEvent
	InvoiceID    uuid.UUID `json:"invoice_id"`
	DocumentType string    `json:"document_type"`
}

// NewInvoiceDeletedEvent creates a new InvoiceDeletedEvent
func NewInvoiceDeletedEvent(invoice *Invoice) *InvoiceDeletedEvent {
	return &InvoiceDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceDeleted, AggregateTypeInvoice, invoice.ID, invoice.BusinessID),
		InvoiceID:       invoice.ID,
		DocumentType:    invoice.DocumentType.String(),
	}
}

// EventType returns the event type name
func (e *InvoiceDeletedEvent) EventType() string {
	return EventTypeInvoiceDeleted
}
