package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinvoicing "github.com/invoicing/backend/internal/application/invoicing"
	"github.com/invoicing/backend/internal/domain/invoicing"
	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/invoicing/backend/internal/infrastructure/persistence"
)

// invoicingServices wires the application services over real repositories.
type invoicingServices struct {
	invoices *appinvoicing.InvoiceService
	finalize *appinvoicing.FinalizeService
}

func newInvoicingServices(tdb *TestDB) invoicingServices {
	invoiceRepo := persistence.NewGormInvoiceRepository(tdb.DB)
	customerRepo := persistence.NewGormCustomerRepository(tdb.DB)
	businessRepo := persistence.NewGormBusinessRepository(tdb.DB)
	txScope := persistence.NewGormTransactionScope(tdb.DB)

	return invoicingServices{
		invoices: appinvoicing.NewInvoiceService(invoiceRepo, customerRepo),
		finalize: appinvoicing.NewFinalizeService(txScope, businessRepo, customerRepo),
	}
}

func consultingItems() []appinvoicing.InvoiceItemInput {
	return []appinvoicing.InvoiceItemInput{
		{
			Position:    1,
			Description: "Consulting",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   10000,
			VATRate:     invoicing.StandardVATRate,
		},
	}
}

// TestFinalizeFlow covers the full lifecycle: draft creation, finalization
// with number assignment, and the immutability of the finalized document.
func TestFinalizeFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	business := tdb.seedBusiness("512345678")
	customer := tdb.seedCustomer(business.ID, "Acme Ltd")
	svc := newInvoicingServices(tdb)
	ctx := context.Background()

	draft, err := svc.invoices.Create(ctx, business.ID, appinvoicing.CreateInvoiceRequest{
		DocumentType: "tax_invoice",
		CustomerID:   &customer.ID,
		Items:        consultingItems(),
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", draft.Status)
	assert.Nil(t, draft.FullNumber)

	finalized, err := svc.finalize.Finalize(ctx, business.ID, draft.ID, appinvoicing.FinalizeInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "finalized", finalized.Status)
	require.NotNil(t, finalized.SequenceNumber)
	assert.Equal(t, int64(1), *finalized.SequenceNumber)
	require.NotNil(t, finalized.FullNumber)
	assert.Equal(t, "INV-0001", *finalized.FullNumber)
	require.NotNil(t, finalized.Customer)
	require.NotNil(t, finalized.Customer.Name)
	assert.Equal(t, "Acme Ltd", *finalized.Customer.Name)
	assert.NotNil(t, finalized.IssuedAt)

	// 2 x 10000 agorot at the standard 17% VAT rate
	assert.Equal(t, int64(20000), finalized.Subtotal)
	assert.Equal(t, int64(3400), finalized.VATTotal)
	assert.Equal(t, int64(23400), finalized.Total)

	// Finalized documents reject every mutation path
	notes := "changed"
	_, err = svc.invoices.Update(ctx, business.ID, draft.ID, appinvoicing.UpdateInvoiceRequest{Notes: &notes})
	assertDomainError(t, err, shared.ErrNotDraft.Code)

	_, err = svc.invoices.ReplaceItems(ctx, business.ID, draft.ID, appinvoicing.ReplaceItemsRequest{Items: consultingItems()})
	assertDomainError(t, err, shared.ErrNotDraft.Code)

	err = svc.invoices.Delete(ctx, business.ID, draft.ID)
	assertDomainError(t, err, shared.ErrNotDraft.Code)

	_, err = svc.finalize.Finalize(ctx, business.ID, draft.ID, appinvoicing.FinalizeInvoiceRequest{})
	assertDomainError(t, err, shared.ErrNotDraft.Code)

	// The next document continues the stream
	second, err := svc.invoices.Create(ctx, business.ID, appinvoicing.CreateInvoiceRequest{
		DocumentType: "tax_invoice",
		CustomerID:   &customer.ID,
		Items:        consultingItems(),
	})
	require.NoError(t, err)
	finalizedSecond, err := svc.finalize.Finalize(ctx, business.ID, second.ID, appinvoicing.FinalizeInvoiceRequest{})
	require.NoError(t, err)
	require.NotNil(t, finalizedSecond.FullNumber)
	assert.Equal(t, "INV-0002", *finalizedSecond.FullNumber)
}

// TestFinalizeFlow_FailedValidationLeavesDraftAndCounterUntouched checks that
// a finalization rejected before allocation neither numbers the draft nor
// consumes a sequence number.
func TestFinalizeFlow_FailedValidationLeavesDraftAndCounterUntouched(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	business := tdb.seedBusiness("512345678")
	customer := tdb.seedCustomer(business.ID, "Acme Ltd")
	svc := newInvoicingServices(tdb)
	ctx := context.Background()

	// Draft without line items fails the precondition check
	draft, err := svc.invoices.Create(ctx, business.ID, appinvoicing.CreateInvoiceRequest{
		DocumentType: "tax_invoice",
		CustomerID:   &customer.ID,
	})
	require.NoError(t, err)

	_, err = svc.finalize.Finalize(ctx, business.ID, draft.ID, appinvoicing.FinalizeInvoiceRequest{})
	assertDomainError(t, err, shared.ErrNoLineItems.Code)

	reloaded, err := svc.invoices.GetByID(ctx, business.ID, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", reloaded.Status)
	assert.Nil(t, reloaded.FullNumber)

	seqRepo := persistence.NewGormSequenceRepository(tdb.DB)
	peeked, err := seqRepo.Peek(ctx, business.ID, invoicing.SequenceGroupTaxDocument, business.StartingInvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(1), peeked, "rejected finalization must not consume a number")
}

// TestFinalizeFlow_InactiveCustomer rejects finalization when the assigned
// customer was deactivated after the draft was created.
func TestFinalizeFlow_InactiveCustomer(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	business := tdb.seedBusiness("512345678")
	customer := tdb.seedCustomer(business.ID, "Acme Ltd")
	svc := newInvoicingServices(tdb)
	ctx := context.Background()

	draft, err := svc.invoices.Create(ctx, business.ID, appinvoicing.CreateInvoiceRequest{
		DocumentType: "tax_invoice",
		CustomerID:   &customer.ID,
		Items:        consultingItems(),
	})
	require.NoError(t, err)

	require.NoError(t, customer.Deactivate())
	customerRepo := persistence.NewGormCustomerRepository(tdb.DB)
	require.NoError(t, customerRepo.Save(ctx, customer))

	_, err = svc.finalize.Finalize(ctx, business.ID, draft.ID, appinvoicing.FinalizeInvoiceRequest{})
	assertDomainError(t, err, shared.ErrCustomerInactive.Code)
}

// TestFinalizeFlow_ReceiptUsesOwnStream finalizes a tax invoice and a receipt
// and expects both to carry number one of their respective streams.
func TestFinalizeFlow_ReceiptUsesOwnStream(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	business := tdb.seedBusiness("512345678")
	customer := tdb.seedCustomer(business.ID, "Acme Ltd")
	svc := newInvoicingServices(tdb)
	ctx := context.Background()

	for _, docType := range []string{"tax_invoice", "receipt"} {
		draft, err := svc.invoices.Create(ctx, business.ID, appinvoicing.CreateInvoiceRequest{
			DocumentType: docType,
			CustomerID:   &customer.ID,
			Items:        consultingItems(),
		})
		require.NoError(t, err)

		finalized, err := svc.finalize.Finalize(ctx, business.ID, draft.ID, appinvoicing.FinalizeInvoiceRequest{})
		require.NoError(t, err, "finalize %s", docType)
		require.NotNil(t, finalized.SequenceNumber)
		assert.Equal(t, int64(1), *finalized.SequenceNumber, "%s stream starts at 1", docType)
	}
}

// assertDomainError unwraps err and checks its domain error code.
func assertDomainError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}
