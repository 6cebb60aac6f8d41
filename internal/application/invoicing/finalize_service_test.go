package invoicing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/identity"
	"github.com/invoicing/backend/internal/domain/invoicing"
	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type finalizeFixture struct {
	invoiceRepo  *MockInvoiceRepository
	sequenceRepo *MockSequenceRepository
	customerRepo *MockCustomerRepository
	businessRepo *MockBusinessRepository
	service      *FinalizeService
	business     *identity.Business
	businessID   uuid.UUID
}

func newFinalizeFixture(t *testing.T, businessType identity.BusinessType) *finalizeFixture {
	business, err := identity.NewBusiness("Rimon Consulting", "123456789", businessType)
	require.NoError(t, err)
	require.NoError(t, business.SetNumbering("INV", 1))

	f := &finalizeFixture{
		invoiceRepo:  new(MockInvoiceRepository),
		sequenceRepo: new(MockSequenceRepository),
		customerRepo: new(MockCustomerRepository),
		businessRepo: new(MockBusinessRepository),
		business:     business,
		businessID:   business.ID,
	}
	txScope := NewNoOpTransactionScope(f.invoiceRepo, f.sequenceRepo)
	f.service = NewFinalizeService(txScope, f.businessRepo, f.customerRepo)
	f.businessRepo.On("FindByID", mock.Anything, business.ID).Return(business, nil)
	return f
}

func TestFinalizeService_Finalize(t *testing.T) {
	t.Run("finalizes draft with number snapshot and totals", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)

		customer := testActiveCustomer(t, f.businessID)
		invoice := testDraftInvoice(t, f.businessID, &customer.ID)

		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)
		f.customerRepo.On("FindByIDForBusiness", mock.Anything, f.businessID, customer.ID).Return(customer, nil)
		f.sequenceRepo.On("Allocate", mock.Anything, f.businessID, invoicing.SequenceGroupTaxDocument, int64(1)).Return(int64(1), nil)
		f.invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

		resp, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})

		require.NoError(t, err)
		assert.Equal(t, "finalized", resp.Status)
		require.NotNil(t, resp.SequenceNumber)
		assert.Equal(t, int64(1), *resp.SequenceNumber)
		require.NotNil(t, resp.FullNumber)
		assert.Equal(t, "INV-0001", *resp.FullNumber)
		require.NotNil(t, resp.Customer)
		assert.Equal(t, "Acme Ltd", *resp.Customer.Name)
		assert.Equal(t, "1 Herzl St, Tel Aviv, 6100001", *resp.Customer.Address)
		assert.NotNil(t, resp.IssuedAt)
		assert.Equal(t, int64(23400), resp.Total)
		f.invoiceRepo.AssertExpectations(t)
		f.sequenceRepo.AssertExpectations(t)
	})

	t.Run("rejects already finalized invoice", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)

		customer := testActiveCustomer(t, f.businessID)
		invoice := testDraftInvoice(t, f.businessID, &customer.ID)
		require.NoError(t, invoice.Finalize(invoicing.SequenceGroupTaxDocument,
			invoicing.AssignedNumber{SequenceNumber: 7, FullNumber: "INV-0007"},
			invoicing.CustomerSnapshot{}, time.Now()))

		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)

		_, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})

		assert.ErrorIs(t, err, shared.ErrNotDraft)
		f.sequenceRepo.AssertNotCalled(t, "Allocate")
	})

	t.Run("rejects draft without customer", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)

		invoice := testDraftInvoice(t, f.businessID, nil)
		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)

		_, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})

		assert.ErrorIs(t, err, shared.ErrMissingCustomer)
		f.sequenceRepo.AssertNotCalled(t, "Allocate")
	})

	t.Run("rejects missing customer record", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)

		customerID := uuid.New()
		invoice := testDraftInvoice(t, f.businessID, &customerID)
		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)
		f.customerRepo.On("FindByIDForBusiness", mock.Anything, f.businessID, customerID).Return(nil, errors.New("record not found"))

		_, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})

		assert.ErrorIs(t, err, shared.ErrCustomerNotFound)
	})

	t.Run("rejects inactive customer", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)

		customer := testActiveCustomer(t, f.businessID)
		require.NoError(t, customer.Deactivate())
		invoice := testDraftInvoice(t, f.businessID, &customer.ID)

		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)
		f.customerRepo.On("FindByIDForBusiness", mock.Anything, f.businessID, customer.ID).Return(customer, nil)

		_, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})

		assert.ErrorIs(t, err, shared.ErrCustomerInactive)
	})

	t.Run("rejects draft without items", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)

		customer := testActiveCustomer(t, f.businessID)
		invoice, err := invoicing.NewInvoice(f.businessID, invoicing.DocumentTypeTaxInvoice, &customer.ID, time.Now().Format("2006-01-02"))
		require.NoError(t, err)

		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)
		f.customerRepo.On("FindByIDForBusiness", mock.Anything, f.businessID, customer.ID).Return(customer, nil)

		_, err = f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})

		assert.ErrorIs(t, err, shared.ErrNoLineItems)
	})

	t.Run("rejects invoice date too far in the future", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)

		customer := testActiveCustomer(t, f.businessID)
		invoice := testDraftInvoice(t, f.businessID, &customer.ID)

		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)
		f.customerRepo.On("FindByIDForBusiness", mock.Anything, f.businessID, customer.ID).Return(customer, nil)

		farFuture := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
		_, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{InvoiceDate: farFuture})

		assert.ErrorIs(t, err, shared.ErrInvalidInvoiceDate)
		f.sequenceRepo.AssertNotCalled(t, "Allocate")
	})

	t.Run("rejects standard VAT for exempt dealer", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeExemptDealer)

		customer := testActiveCustomer(t, f.businessID)
		invoice := testDraftInvoice(t, f.businessID, &customer.ID)

		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)
		f.customerRepo.On("FindByIDForBusiness", mock.Anything, f.businessID, customer.ID).Return(customer, nil)

		_, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})

		assert.ErrorIs(t, err, shared.ErrInvalidVATRate)
	})

	t.Run("accepts zero rated lines for exempt dealer", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeExemptDealer)

		customer := testActiveCustomer(t, f.businessID)
		invoice, err := invoicing.NewInvoice(f.businessID, invoicing.DocumentTypeTaxInvoice, &customer.ID, time.Now().Format("2006-01-02"))
		require.NoError(t, err)
		item, err := invoicing.NewInvoiceItem(invoice.ID, 1, "Consulting", "",
			decimal.NewFromInt(2), 10000, decimal.Zero, 0)
		require.NoError(t, err)
		require.NoError(t, invoice.ReplaceItems([]invoicing.InvoiceItem{*item}))

		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)
		f.customerRepo.On("FindByIDForBusiness", mock.Anything, f.businessID, customer.ID).Return(customer, nil)
		f.sequenceRepo.On("Allocate", mock.Anything, f.businessID, invoicing.SequenceGroupTaxDocument, int64(1)).Return(int64(1), nil)
		f.invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

		resp, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})

		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.VATTotal)
		assert.Equal(t, int64(20000), resp.Total)
	})

	t.Run("date override is persisted on the finalized invoice", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)

		customer := testActiveCustomer(t, f.businessID)
		invoice := testDraftInvoice(t, f.businessID, &customer.ID)

		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)
		f.customerRepo.On("FindByIDForBusiness", mock.Anything, f.businessID, customer.ID).Return(customer, nil)
		f.sequenceRepo.On("Allocate", mock.Anything, f.businessID, invoicing.SequenceGroupTaxDocument, int64(1)).Return(int64(5), nil)
		f.invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

		override := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
		resp, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{InvoiceDate: override})

		require.NoError(t, err)
		assert.Equal(t, override, resp.InvoiceDate)
		assert.Equal(t, "INV-0005", *resp.FullNumber)
	})

	t.Run("allocation failure aborts without saving", func(t *testing.T) {
		f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)

		customer := testActiveCustomer(t, f.businessID)
		invoice := testDraftInvoice(t, f.businessID, &customer.ID)

		f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)
		f.customerRepo.On("FindByIDForBusiness", mock.Anything, f.businessID, customer.ID).Return(customer, nil)
		f.sequenceRepo.On("Allocate", mock.Anything, f.businessID, invoicing.SequenceGroupTaxDocument, int64(1)).
			Return(int64(0), errors.New("deadlock detected"))

		_, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})

		require.Error(t, err)
		assert.True(t, invoice.IsDraft())
		f.invoiceRepo.AssertNotCalled(t, "Save")
	})
}

func TestFinalizeService_PublishesEventAfterCommit(t *testing.T) {
	f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)
	publisher := &recordingEventPublisher{}
	f.service.WithEvents(publisher)

	customer := testActiveCustomer(t, f.businessID)
	invoice := testDraftInvoice(t, f.businessID, &customer.ID)
	// A draft loaded from storage carries no pending events
	invoice.ClearDomainEvents()

	f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)
	f.customerRepo.On("FindByIDForBusiness", mock.Anything, f.businessID, customer.ID).Return(customer, nil)
	f.sequenceRepo.On("Allocate", mock.Anything, f.businessID, invoicing.SequenceGroupTaxDocument, int64(1)).Return(int64(1), nil)
	f.invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

	_, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, invoicing.EventTypeInvoiceFinalized, publisher.published[0].EventType())
	assert.Equal(t, invoice.ID, publisher.published[0].AggregateID())
	assert.Empty(t, invoice.GetDomainEvents(), "publishing drains the aggregate")
}

func TestFinalizeService_NoEventOnFailedFinalize(t *testing.T) {
	f := newFinalizeFixture(t, identity.BusinessTypeLicensedDealer)
	publisher := &recordingEventPublisher{}
	f.service.WithEvents(publisher)

	invoice := testDraftInvoice(t, f.businessID, nil)
	f.invoiceRepo.On("FindByIDForBusinessLocked", mock.Anything, f.businessID, invoice.ID).Return(invoice, nil)

	_, err := f.service.Finalize(context.Background(), f.businessID, invoice.ID, FinalizeInvoiceRequest{})

	assert.ErrorIs(t, err, shared.ErrMissingCustomer)
	assert.Empty(t, publisher.published, "a rolled back finalization publishes nothing")
}
