package invoicing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/invoicing"
	"github.com/invoicing/backend/internal/domain/partner"
	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testDraftInvoice(t *testing.T, businessID uuid.UUID, customerID *uuid.UUID) *invoicing.Invoice {
	invoice, err := invoicing.NewInvoice(businessID, invoicing.DocumentTypeTaxInvoice, customerID, time.Now().Format("2006-01-02"))
	require.NoError(t, err)
	item, err := invoicing.NewInvoiceItem(invoice.ID, 1, "Consulting", "",
		decimal.NewFromInt(2), 10000, decimal.Zero, invoicing.StandardVATRate)
	require.NoError(t, err)
	require.NoError(t, invoice.ReplaceItems([]invoicing.InvoiceItem{*item}))
	return invoice
}

func testActiveCustomer(t *testing.T, businessID uuid.UUID) *partner.Customer {
	customer, err := partner.NewCustomer(businessID, "Acme Ltd")
	require.NoError(t, err)
	require.NoError(t, customer.Update("Acme Ltd", "123456789", "billing@acme.co.il", "", "1 Herzl St", "Tel Aviv", "6100001", ""))
	return customer
}

func TestInvoiceService_Create(t *testing.T) {
	businessID := uuid.New()

	t.Run("creates draft with items", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewInvoiceService(invoiceRepo, customerRepo)

		customer := testActiveCustomer(t, businessID)
		customerRepo.On("FindByIDForBusiness", mock.Anything, businessID, customer.ID).Return(customer, nil)
		invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*invoicing.Invoice")).Return(nil)

		resp, err := service.Create(context.Background(), businessID, CreateInvoiceRequest{
			DocumentType: "tax_invoice",
			CustomerID:   &customer.ID,
			InvoiceDate:  "2026-08-31",
			Items: []InvoiceItemInput{
				{Position: 1, Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: 10000, VATRate: 1700},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, int64(23400), resp.Total)
		assert.Nil(t, resp.FullNumber)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown customer", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewInvoiceService(invoiceRepo, customerRepo)

		customerID := uuid.New()
		customerRepo.On("FindByIDForBusiness", mock.Anything, businessID, customerID).Return(nil, errors.New("not found"))

		_, err := service.Create(context.Background(), businessID, CreateInvoiceRequest{
			DocumentType: "tax_invoice",
			CustomerID:   &customerID,
		})

		assert.ErrorIs(t, err, shared.ErrCustomerNotFound)
		invoiceRepo.AssertNotCalled(t, "Save")
	})

	t.Run("allows draft without customer or items", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewInvoiceService(invoiceRepo, customerRepo)

		invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*invoicing.Invoice")).Return(nil)

		resp, err := service.Create(context.Background(), businessID, CreateInvoiceRequest{
			DocumentType: "receipt",
		})

		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Status)
		assert.Empty(t, resp.Items)
		assert.Equal(t, int64(0), resp.Total)
	})
}

func TestInvoiceService_Update(t *testing.T) {
	businessID := uuid.New()

	t.Run("updates draft header", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewInvoiceService(invoiceRepo, customerRepo)

		invoice := testDraftInvoice(t, businessID, nil)
		invoiceRepo.On("FindByIDForBusiness", mock.Anything, businessID, invoice.ID).Return(invoice, nil)
		invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

		date := "2026-09-01"
		notes := "payment due on receipt"
		resp, err := service.Update(context.Background(), businessID, invoice.ID, UpdateInvoiceRequest{
			InvoiceDate: &date,
			Notes:       &notes,
		})

		require.NoError(t, err)
		assert.Equal(t, "2026-09-01", resp.InvoiceDate)
		assert.Equal(t, notes, resp.Notes)
	})

	t.Run("rejects update of finalized invoice", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewInvoiceService(invoiceRepo, customerRepo)

		invoice := testDraftInvoice(t, businessID, nil)
		require.NoError(t, invoice.Finalize(invoicing.SequenceGroupTaxDocument,
			invoicing.AssignedNumber{SequenceNumber: 1, FullNumber: "0001"},
			invoicing.CustomerSnapshot{}, time.Now()))
		invoiceRepo.On("FindByIDForBusiness", mock.Anything, businessID, invoice.ID).Return(invoice, nil)

		date := "2026-09-01"
		_, err := service.Update(context.Background(), businessID, invoice.ID, UpdateInvoiceRequest{InvoiceDate: &date})

		assert.ErrorIs(t, err, shared.ErrNotDraft)
		invoiceRepo.AssertNotCalled(t, "Save")
	})
}

func TestInvoiceService_ReplaceItems(t *testing.T) {
	businessID := uuid.New()

	t.Run("replaces items and recalculates", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewInvoiceService(invoiceRepo, customerRepo)

		invoice := testDraftInvoice(t, businessID, nil)
		invoiceRepo.On("FindByIDForBusiness", mock.Anything, businessID, invoice.ID).Return(invoice, nil)
		invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

		resp, err := service.ReplaceItems(context.Background(), businessID, invoice.ID, ReplaceItemsRequest{
			Items: []InvoiceItemInput{
				{Position: 1, Description: "Design", Quantity: decimal.NewFromInt(1), UnitPrice: 50000, VATRate: 1700},
				{Position: 2, Description: "Hosting", Quantity: decimal.NewFromInt(3), UnitPrice: 2000, VATRate: 1700},
			},
		})

		require.NoError(t, err)
		assert.Len(t, resp.Items, 2)
		assert.Equal(t, int64(56000), resp.TotalBeforeVAT)
	})

	t.Run("clearing items zeroes totals", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewInvoiceService(invoiceRepo, customerRepo)

		invoice := testDraftInvoice(t, businessID, nil)
		invoiceRepo.On("FindByIDForBusiness", mock.Anything, businessID, invoice.ID).Return(invoice, nil)
		invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

		resp, err := service.ReplaceItems(context.Background(), businessID, invoice.ID, ReplaceItemsRequest{})

		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.Equal(t, int64(0), resp.Total)
	})
}

func TestInvoiceService_Delete(t *testing.T) {
	businessID := uuid.New()

	t.Run("deletes draft", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewInvoiceService(invoiceRepo, customerRepo)

		invoice := testDraftInvoice(t, businessID, nil)
		invoiceRepo.On("FindByIDForBusiness", mock.Anything, businessID, invoice.ID).Return(invoice, nil)
		invoiceRepo.On("DeleteForBusiness", mock.Anything, businessID, invoice.ID).Return(nil)

		err := service.Delete(context.Background(), businessID, invoice.ID)
		require.NoError(t, err)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete finalized invoice", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewInvoiceService(invoiceRepo, customerRepo)

		invoice := testDraftInvoice(t, businessID, nil)
		require.NoError(t, invoice.Finalize(invoicing.SequenceGroupTaxDocument,
			invoicing.AssignedNumber{SequenceNumber: 1, FullNumber: "0001"},
			invoicing.CustomerSnapshot{}, time.Now()))
		invoiceRepo.On("FindByIDForBusiness", mock.Anything, businessID, invoice.ID).Return(invoice, nil)

		err := service.Delete(context.Background(), businessID, invoice.ID)
		assert.ErrorIs(t, err, shared.ErrNotDraft)
		invoiceRepo.AssertNotCalled(t, "DeleteForBusiness")
	})
}

func TestInvoiceService_List(t *testing.T) {
	businessID := uuid.New()

	invoiceRepo := new(MockInvoiceRepository)
	customerRepo := new(MockCustomerRepository)
	service := NewInvoiceService(invoiceRepo, customerRepo)

	invoice := testDraftInvoice(t, businessID, nil)
	invoiceRepo.On("FindByStatus", mock.Anything, businessID, invoicing.InvoiceStatusDraft, mock.AnythingOfType("shared.Filter")).
		Return([]invoicing.Invoice{*invoice}, nil)
	invoiceRepo.On("CountForBusiness", mock.Anything, businessID, mock.AnythingOfType("shared.Filter")).
		Return(int64(1), nil)

	items, total, err := service.List(context.Background(), businessID, InvoiceListFilter{Status: "draft"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "draft", items[0].Status)
}
