package invoicing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/identity"
	"github.com/invoicing/backend/internal/domain/invoicing"
	"github.com/invoicing/backend/internal/domain/partner"
	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/invoicing/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// FinalizeService turns a draft invoice into a numbered legal document. The
// whole effect runs in one transaction: the sequence allocation, the amount
// recomputation, the customer snapshot and the status flip commit together or
// not at all. A rollback after allocation burns the number, which keeps the
// stream duplicate-free without ever blocking on failures.
type FinalizeService struct {
	txScope      TransactionScope
	businessRepo identity.BusinessRepository
	customerRepo partner.CustomerRepository
	metrics      MetricsRecorder
	events       shared.EventPublisher
}

// NewFinalizeService creates a new FinalizeService
func NewFinalizeService(
	txScope TransactionScope,
	businessRepo identity.BusinessRepository,
	customerRepo partner.CustomerRepository,
) *FinalizeService {
	return &FinalizeService{
		txScope:      txScope,
		businessRepo: businessRepo,
		customerRepo: customerRepo,
	}
}

// WithMetrics attaches a metrics recorder and returns the service
func (s *FinalizeService) WithMetrics(metrics MetricsRecorder) *FinalizeService {
	s.metrics = metrics
	return s
}

// WithEvents attaches an event publisher and returns the service
func (s *FinalizeService) WithEvents(events shared.EventPublisher) *FinalizeService {
	s.events = events
	return s
}

// Finalize validates the draft and performs the one-way transition to a
// finalized document. Preconditions are checked in a fixed order so callers
// always see the same error for the same broken state; they are checked again
// on the row-locked invoice inside the transaction, because the draft may
// have changed between the first read and the lock.
func (s *FinalizeService) Finalize(ctx context.Context, businessID, invoiceID uuid.UUID, req FinalizeInvoiceRequest) (*InvoiceResponse, error) {
	started := time.Now()

	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	var response InvoiceResponse
	var finalized *invoicing.Invoice
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForBusinessLocked(ctx, businessID, invoiceID)
		if err != nil {
			return err
		}

		invoiceDate := invoice.EffectiveInvoiceDate(req.InvoiceDate)
		customer, err := s.validate(ctx, business, invoice, invoiceDate)
		if err != nil {
			return err
		}

		if invoiceDate != invoice.InvoiceDate {
			if err := invoice.SetInvoiceDate(invoiceDate); err != nil {
				return err
			}
		}

		group := invoicing.SequenceGroupFor(invoice.DocumentType)
		number, err := repos.SequenceRepo().Allocate(ctx, businessID, group, business.StartingInvoiceNumber)
		if err != nil {
			return err
		}
		assigned := invoicing.AssignedNumber{
			SequenceNumber: number,
			FullNumber:     invoicing.FormatDocumentNumber(business.InvoiceNumberPrefix, number),
		}

		snapshot := buildSnapshot(customer)

		if err := invoice.Finalize(group, assigned, snapshot, time.Now()); err != nil {
			return err
		}

		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}

		logger.L(ctx).Info("invoice finalized",
			zap.String("invoice_id", invoice.ID.String()),
			zap.String("business_id", businessID.String()),
			zap.String("full_number", assigned.FullNumber),
			zap.Int64("total", invoice.Total))

		response = ToInvoiceResponse(invoice)
		finalized = invoice
		return nil
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordFinalizeFailed(ctx, businessID.String(), failureCode(err))
		}
		return nil, err
	}

	// Events only leave the service once the transaction has committed
	shared.PublishEvents(ctx, s.events, finalized)

	if s.metrics != nil {
		group := invoicing.SequenceGroupFor(invoicing.DocumentType(response.DocumentType))
		s.metrics.RecordFinalized(ctx, businessID.String(), response.DocumentType,
			group.String(), response.Total, time.Since(started))
	}

	return &response, nil
}

// failureCode maps a finalization error to its metric label
func failureCode(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "INTERNAL"
}

// validate runs the finalization preconditions in their fixed order and
// returns the customer to snapshot.
func (s *FinalizeService) validate(ctx context.Context, business *identity.Business, invoice *invoicing.Invoice, invoiceDate string) (*partner.Customer, error) {
	if !invoice.IsDraft() {
		return nil, shared.ErrNotDraft
	}

	if invoice.CustomerID == nil {
		return nil, shared.ErrMissingCustomer
	}
	customer, err := s.customerRepo.FindByIDForBusiness(ctx, invoice.BusinessID, *invoice.CustomerID)
	if err != nil {
		return nil, shared.ErrCustomerNotFound
	}
	if !customer.IsActive() {
		return nil, shared.ErrCustomerInactive
	}

	if invoice.ItemCount() == 0 {
		return nil, shared.ErrNoLineItems
	}

	if err := invoicing.ValidateInvoiceDate(invoiceDate, time.Now()); err != nil {
		return nil, err
	}

	if err := invoicing.ValidateVATRates(invoice.Items, business.IsVATExempt()); err != nil {
		return nil, err
	}

	return customer, nil
}

func buildSnapshot(customer *partner.Customer) invoicing.CustomerSnapshot {
	name := customer.Name
	snapshot := invoicing.CustomerSnapshot{
		Name:    &name,
		Address: invoicing.BuildSnapshotAddress(customer.StreetAddress, customer.City, customer.PostalCode),
	}
	if customer.TaxID != "" {
		taxID := customer.TaxID
		snapshot.TaxID = &taxID
	}
	if customer.Email != "" {
		email := customer.Email
		snapshot.Email = &email
	}
	return snapshot
}
