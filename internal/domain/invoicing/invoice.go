package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusFinalized InvoiceStatus = "finalized"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusFinalized:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Finalized is terminal: a finalized invoice can never return to draft and
// its document number is never reassigned.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusFinalized
	case InvoiceStatusFinalized:
		return false
	}
	return false
}

// StandardVATRate is the standard Israeli VAT rate in basis points (17%).
const StandardVATRate int64 = 1700

// MaxFutureInvoiceDays is how far into the future an invoice may be dated.
const MaxFutureInvoiceDays = 7

// invoiceDateLayout is the calendar-date format used for invoice dates.
// Dates are stored and compared as strings to avoid timezone skew.
const invoiceDateLayout = "2006-01-02"

// InvoiceItem represents a line item on an invoice. The raw inputs
// (quantity, unit price, discount, VAT rate) are the source of truth;
// the monetary fields are derived via CalculateLine and recomputed from the
// raw inputs at finalization, never trusted from a previous write.
type InvoiceItem struct {
	ID            uuid.UUID
	InvoiceID     uuid.UUID
	Position      int
	Description   string
	CatalogNumber string

	Quantity        decimal.Decimal // may be fractional
	UnitPrice       int64           // agorot
	DiscountPercent decimal.Decimal // 0..100
	VATRate         int64           // basis points

	Gross            int64
	Discount         int64
	LineTotal        int64
	VATAmount        int64
	LineTotalInclVAT int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewInvoiceItem creates a new line item and computes its monetary fields
func NewInvoiceItem(invoiceID uuid.UUID, position int, description, catalogNumber string, quantity decimal.Decimal, unitPrice int64, discountPercent decimal.Decimal, vatRate int64) (*InvoiceItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if position < 1 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Item position must be positive")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice < 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100 percent")
	}
	if vatRate < 0 {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", "VAT rate cannot be negative")
	}

	now := time.Now()
	item := &InvoiceItem{
		ID:              uuid.New(),
		InvoiceID:       invoiceID,
		Position:        position,
		Description:     description,
		CatalogNumber:   catalogNumber,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		VATRate:         vatRate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	item.Recalculate()
	return item, nil
}

// Recalculate recomputes the monetary fields from the raw inputs
func (i *InvoiceItem) Recalculate() {
	amounts := CalculateLine(i.Quantity, i.UnitPrice, i.DiscountPercent, i.VATRate)
	i.Gross = amounts.Gross
	i.Discount = amounts.Discount
	i.LineTotal = amounts.LineTotal
	i.VATAmount = amounts.VATAmount
	i.LineTotalInclVAT = amounts.LineTotalInclVAT
	i.UpdatedAt = time.Now()
}

// CustomerSnapshot is the copy of customer fields embedded in the invoice at
// finalization. Later edits to the live customer record never alter a legally
// issued document. All fields are null while the invoice is in draft.
type CustomerSnapshot struct {
	Name    *string `gorm:"column:customer_name"`
	TaxID   *string `gorm:"column:customer_tax_id"`
	Email   *string `gorm:"column:customer_email"`
	Address *string `gorm:"column:customer_address"`
}

// BuildSnapshotAddress joins the customer address parts with ", ", skipping
// empty parts. Returns nil when every part is empty.
func BuildSnapshotAddress(streetAddress, city, postalCode string) *string {
	parts := make([]string, 0, 3)
	for _, p := range []string{streetAddress, city, postalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, ", ")
	return &joined
}

// Invoice represents a tax document aggregate root. While in draft it is
// freely editable; finalization assigns the document number, snapshots the
// customer and freezes the document forever.
type Invoice struct {
	shared.BusinessAggregateRoot
	DocumentType DocumentType  `gorm:"type:varchar(32);not null"`
	Status       InvoiceStatus `gorm:"type:varchar(16);not null;default:'draft'"`
	CustomerID   *uuid.UUID    `gorm:"type:uuid;index"`
	InvoiceDate  string        `gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Items        []InvoiceItem `gorm:"foreignKey:InvoiceID"`

	Subtotal       int64 `gorm:"not null;default:0"`
	DiscountTotal  int64 `gorm:"not null;default:0"`
	TotalBeforeVAT int64 `gorm:"not null;default:0"`
	VATTotal       int64 `gorm:"not null;default:0"`
	Total          int64 `gorm:"not null;default:0"`

	// Sequence fields: all null in draft, all set exactly once at
	// finalization, never reassigned.
	SequenceGroup  *SequenceGroup `gorm:"type:varchar(32)"`
	SequenceNumber *int64
	FullNumber     *string `gorm:"type:varchar(64)"`

	Customer CustomerSnapshot `gorm:"embedded"`
	IssuedAt *time.Time
	Notes    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new draft invoice
func NewInvoice(businessID uuid.UUID, documentType DocumentType, customerID *uuid.UUID, invoiceDate string) (*Invoice, error) {
	if !documentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", fmt.Sprintf("Unknown document type %q", documentType))
	}
	if invoiceDate == "" {
		invoiceDate = time.Now().Format(invoiceDateLayout)
	}
	if _, err := time.Parse(invoiceDateLayout, invoiceDate); err != nil {
		return nil, shared.NewDomainError("INVALID_INVOICE_DATE", "Invoice date must be formatted as YYYY-MM-DD")
	}

	invoice := &Invoice{
		BusinessAggregateRoot: shared.NewBusinessAggregateRoot(businessID),
		DocumentType:          documentType,
		Status:                InvoiceStatusDraft,
		CustomerID:            customerID,
		InvoiceDate:           invoiceDate,
		Items:                 make([]InvoiceItem, 0),
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// IsDraft returns true if the invoice is in draft status
func (inv *Invoice) IsDraft() bool {
	return inv.Status == InvoiceStatusDraft
}

// IsFinalized returns true if the invoice has been finalized
func (inv *Invoice) IsFinalized() bool {
	return inv.Status == InvoiceStatusFinalized
}

// SetCustomer assigns the customer reference. Only allowed in draft status.
func (inv *Invoice) SetCustomer(customerID *uuid.UUID) error {
	if !inv.IsDraft() {
		return shared.ErrNotDraft
	}
	inv.CustomerID = customerID
	inv.UpdatedAt = time.Now()
	return nil
}

// SetInvoiceDate sets the invoice date. Only allowed in draft status.
func (inv *Invoice) SetInvoiceDate(invoiceDate string) error {
	if !inv.IsDraft() {
		return shared.ErrNotDraft
	}
	if _, err := time.Parse(invoiceDateLayout, invoiceDate); err != nil {
		return shared.NewDomainError("INVALID_INVOICE_DATE", "Invoice date must be formatted as YYYY-MM-DD")
	}
	inv.InvoiceDate = invoiceDate
	inv.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the free-form notes field
func (inv *Invoice) SetNotes(notes string) {
	inv.Notes = notes
	inv.UpdatedAt = time.Now()
}

// ReplaceItems replaces the full item list. Only allowed in draft status.
// Positions must be unique; the invoice does not reorder or deduplicate.
func (inv *Invoice) ReplaceItems(items []InvoiceItem) error {
	if !inv.IsDraft() {
		return shared.ErrNotDraft
	}
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.Position]; dup {
			return shared.NewDomainError("DUPLICATE_POSITION", fmt.Sprintf("Duplicate item position %d", item.Position))
		}
		seen[item.Position] = struct{}{}
	}
	for idx := range items {
		items[idx].InvoiceID = inv.ID
	}
	inv.Items = items
	inv.RecalculateTotals()
	inv.UpdatedAt = time.Now()
	return nil
}

// RecalculateTotals recomputes the invoice-level totals from the items'
// raw inputs
func (inv *Invoice) RecalculateTotals() {
	totals := CalculateInvoiceTotals(inv.Items)
	inv.Subtotal = totals.Subtotal
	inv.DiscountTotal = totals.DiscountTotal
	inv.TotalBeforeVAT = totals.TotalBeforeVAT
	inv.VATTotal = totals.VATTotal
	inv.Total = totals.Total
}

// EffectiveInvoiceDate returns the request override when given, otherwise the
// stored date
func (inv *Invoice) EffectiveInvoiceDate(override string) string {
	if override != "" {
		return override
	}
	return inv.InvoiceDate
}

// ValidateInvoiceDate checks that the date is a calendar date no more than
// MaxFutureInvoiceDays after today. The comparison is between YYYY-MM-DD
// strings, which orders lexicographically, so no timezone arithmetic is
// involved beyond choosing "today".
func ValidateInvoiceDate(date string, today time.Time) error {
	if _, err := time.Parse(invoiceDateLayout, date); err != nil {
		return shared.ErrInvalidInvoiceDate
	}
	latest := today.AddDate(0, 0, MaxFutureInvoiceDays).Format(invoiceDateLayout)
	if date > latest {
		return shared.ErrInvalidInvoiceDate
	}
	return nil
}

// ValidateVATRates checks every item's VAT rate against the business's
// tax-exemption status: an exempt dealer must issue all lines at 0%, any
// other business may use 0% or the standard rate only.
func ValidateVATRates(items []InvoiceItem, vatExempt bool) error {
	for _, item := range items {
		if vatExempt {
			if item.VATRate != 0 {
				return shared.ErrInvalidVATRate
			}
			continue
		}
		if item.VATRate != 0 && item.VATRate != StandardVATRate {
			return shared.ErrInvalidVATRate
		}
	}
	return nil
}

// Finalize performs the one-way draft to finalized transition: document
// number, recomputed amounts, customer snapshot and issue timestamp are all
// set together. The caller is responsible for running this inside the same
// transaction that allocated the number and for persisting the result
// atomically.
func (inv *Invoice) Finalize(group SequenceGroup, assigned AssignedNumber, snapshot CustomerSnapshot, issuedAt time.Time) error {
	if !inv.Status.CanTransitionTo(InvoiceStatusFinalized) {
		return shared.ErrNotDraft
	}
	if len(inv.Items) == 0 {
		return shared.ErrNoLineItems
	}

	for idx := range inv.Items {
		inv.Items[idx].Recalculate()
	}
	inv.RecalculateTotals()

	inv.Status = InvoiceStatusFinalized
	inv.SequenceGroup = &group
	inv.SequenceNumber = &assigned.SequenceNumber
	inv.FullNumber = &assigned.FullNumber
	inv.Customer = snapshot
	inv.IssuedAt = &issuedAt
	inv.UpdatedAt = issuedAt

	inv.AddDomainEvent(NewInvoiceFinalizedEvent(inv))

	return nil
}

// ItemCount returns the number of line items
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}
