package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/invoicing"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest represents a request to create a draft invoice
type CreateInvoiceRequest struct {
	DocumentType string             `json:"document_type" binding:"required,oneof=tax_invoice tax_invoice_receipt receipt credit_note"`
	CustomerID   *uuid.UUID         `json:"customer_id"`
	InvoiceDate  string             `json:"invoice_date" binding:"omitempty,datetime=2006-01-02"`
	Items        []InvoiceItemInput `json:"items"`
	Notes        string             `json:"notes"`
}

// UpdateInvoiceRequest represents a request to update a draft invoice
type UpdateInvoiceRequest struct {
	CustomerID  *uuid.UUID `json:"customer_id"`
	InvoiceDate *string    `json:"invoice_date" binding:"omitempty,datetime=2006-01-02"`
	Notes       *string    `json:"notes"`
}

// InvoiceItemInput represents one line item in a create or replace request
type InvoiceItemInput struct {
	Position        int             `json:"position" binding:"required,min=1"`
	Description     string          `json:"description" binding:"required,min=1,max=500"`
	CatalogNumber   string          `json:"catalog_number" binding:"max=50"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       int64           `json:"unit_price" binding:"min=0"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	VATRate         int64           `json:"vat_rate" binding:"min=0"`
}

// ReplaceItemsRequest represents a request to replace a draft's line items
type ReplaceItemsRequest struct {
	Items []InvoiceItemInput `json:"items" binding:"required"`
}

// FinalizeInvoiceRequest represents a request to finalize a draft invoice.
// InvoiceDate optionally overrides the stored draft date at the moment of
// issue.
type FinalizeInvoiceRequest struct {
	InvoiceDate string `json:"invoice_date" binding:"omitempty,datetime=2006-01-02"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Status     string     `form:"status" binding:"omitempty,oneof=draft finalized"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Search     string     `form:"search"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	Position         int             `json:"position"`
	Description      string          `json:"description"`
	CatalogNumber    string          `json:"catalog_number,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        int64           `json:"unit_price"`
	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	VATRate          int64           `json:"vat_rate"`
	Gross            int64           `json:"gross"`
	Discount         int64           `json:"discount"`
	LineTotal        int64           `json:"line_total"`
	VATAmount        int64           `json:"vat_amount"`
	LineTotalInclVAT int64           `json:"line_total_incl_vat"`
}

// CustomerSnapshotResponse represents the frozen customer details of a
// finalized invoice
type CustomerSnapshotResponse struct {
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID             uuid.UUID                 `json:"id"`
	BusinessID     uuid.UUID                 `json:"business_id"`
	DocumentType   string                    `json:"document_type"`
	Status         string                    `json:"status"`
	CustomerID     *uuid.UUID                `json:"customer_id,omitempty"`
	InvoiceDate    string                    `json:"invoice_date"`
	Items          []InvoiceItemResponse     `json:"items"`
	Subtotal       int64                     `json:"subtotal"`
	DiscountTotal  int64                     `json:"discount_total"`
	TotalBeforeVAT int64                     `json:"total_before_vat"`
	VATTotal       int64                     `json:"vat_total"`
	Total          int64                     `json:"total"`
	SequenceNumber *int64                    `json:"sequence_number,omitempty"`
	FullNumber     *string                   `json:"full_number,omitempty"`
	Customer       *CustomerSnapshotResponse `json:"customer,omitempty"`
	IssuedAt       *time.Time                `json:"issued_at,omitempty"`
	Notes          string                    `json:"notes,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

// InvoiceListItemResponse represents an invoice in list responses
type InvoiceListItemResponse struct {
	ID           uuid.UUID  `json:"id"`
	DocumentType string     `json:"document_type"`
	Status       string     `json:"status"`
	CustomerID   *uuid.UUID `json:"customer_id,omitempty"`
	CustomerName *string    `json:"customer_name,omitempty"`
	InvoiceDate  string     `json:"invoice_date"`
	Total        int64      `json:"total"`
	FullNumber   *string    `json:"full_number,omitempty"`
	IssuedAt     *time.Time `json:"issued_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToInvoiceItemResponse converts a domain item to a response DTO
func ToInvoiceItemResponse(item *invoicing.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:               item.ID,
		Position:         item.Position,
		Description:      item.Description,
		CatalogNumber:    item.CatalogNumber,
		Quantity:         item.Quantity,
		UnitPrice:        item.UnitPrice,
		DiscountPercent:  item.DiscountPercent,
		VATRate:          item.VATRate,
		Gross:            item.Gross,
		Discount:         item.Discount,
		LineTotal:        item.LineTotal,
		VATAmount:        item.VATAmount,
		LineTotalInclVAT: item.LineTotalInclVAT,
	}
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(invoice *invoicing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(invoice.Items))
	for i := range invoice.Items {
		items[i] = ToInvoiceItemResponse(&invoice.Items[i])
	}

	response := InvoiceResponse{
		ID:             invoice.ID,
		BusinessID:     invoice.BusinessID,
		DocumentType:   invoice.DocumentType.String(),
		Status:         invoice.Status.String(),
		CustomerID:     invoice.CustomerID,
		InvoiceDate:    invoice.InvoiceDate,
		Items:          items,
		Subtotal:       invoice.Subtotal,
		DiscountTotal:  invoice.DiscountTotal,
		TotalBeforeVAT: invoice.TotalBeforeVAT,
		VATTotal:       invoice.VATTotal,
		Total:          invoice.Total,
		SequenceNumber: invoice.SequenceNumber,
		FullNumber:     invoice.FullNumber,
		IssuedAt:       invoice.IssuedAt,
		Notes:          invoice.Notes,
		CreatedAt:      invoice.CreatedAt,
		UpdatedAt:      invoice.UpdatedAt,
	}

	if invoice.IsFinalized() {
		response.Customer = &CustomerSnapshotResponse{
			Name:    invoice.Customer.Name,
			TaxID:   invoice.Customer.TaxID,
			Email:   invoice.Customer.Email,
			Address: invoice.Customer.Address,
		}
	}

	return response
}

// ToInvoiceListItemResponse converts a domain invoice to a list item DTO
func ToInvoiceListItemResponse(invoice *invoicing.Invoice) InvoiceListItemResponse {
	return InvoiceListItemResponse{
		ID:           invoice.ID,
		DocumentType: invoice.DocumentType.String(),
		Status:       invoice.Status.String(),
		CustomerID:   invoice.CustomerID,
		CustomerName: invoice.Customer.Name,
		InvoiceDate:  invoice.InvoiceDate,
		Total:        invoice.Total,
		FullNumber:   invoice.FullNumber,
		IssuedAt:     invoice.IssuedAt,
		CreatedAt:    invoice.CreatedAt,
	}
}
