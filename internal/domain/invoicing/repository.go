package invoicing

import (
	"context"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByIDForBusiness finds an invoice with its items, scoped to a business
	FindByIDForBusiness(ctx context.Context, businessID, id uuid.UUID) (*Invoice, error)

	// FindByIDForBusinessLocked finds an invoice with a row-level write lock.
	// Only valid inside a transaction.
	FindByIDForBusinessLocked(ctx context.Context, businessID, id uuid.UUID) (*Invoice, error)

	// FindAllForBusiness lists invoices for a business with filtering
	FindAllForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByStatus lists invoices by status for a business
	FindByStatus(ctx context.Context, businessID uuid.UUID, status InvoiceStatus, filter shared.Filter) ([]Invoice, error)

	// FindByCustomer lists invoices referencing a customer
	FindByCustomer(ctx context.Context, businessID, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// Save creates or updates an invoice together with its items
	Save(ctx context.Context, invoice *Invoice) error

	// DeleteForBusiness deletes an invoice and its items, scoped to a business
	DeleteForBusiness(ctx context.Context, businessID, id uuid.UUID) error

	// CountForBusiness counts invoices for a business
	CountForBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts invoices by status for a business
	CountByStatus(ctx context.Context, businessID uuid.UUID, status InvoiceStatus) (int64, error)
}

// SequenceRepository defines the interface for document number allocation
type SequenceRepository interface {
	// Allocate atomically hands out the next number for the business's
	// numbering stream, creating the counter row on first use. The first
	// allocation returns startingNumber itself; startingNumber is ignored
	// once the row exists. Two concurrent calls can never receive the
	// same number. If the surrounding transaction rolls back the number
	// is burned, not reused.
	Allocate(ctx context.Context, businessID uuid.UUID, group SequenceGroup, startingNumber int64) (int64, error)

	// Peek returns the number the next allocation would assign without
	// advancing the counter. Intended for display only; the value is
	// stale the moment it is read.
	Peek(ctx context.Context, businessID uuid.UUID, group SequenceGroup, startingNumber int64) (int64, error)
}
