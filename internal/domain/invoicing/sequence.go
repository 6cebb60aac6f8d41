package invoicing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentType identifies the kind of tax document an invoice represents
type DocumentType string

const (
	DocumentTypeTaxInvoice        DocumentType = "tax_invoice"
	DocumentTypeTaxInvoiceReceipt DocumentType = "tax_invoice_receipt"
	DocumentTypeReceipt           DocumentType = "receipt"
	DocumentTypeCreditNote        DocumentType = "credit_note"
)

// IsValid checks if the document type is known
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeTaxInvoice, DocumentTypeTaxInvoiceReceipt, DocumentTypeReceipt, DocumentTypeCreditNote:
		return true
	}
	return false
}

// String returns the string representation of DocumentType
func (t DocumentType) String() string {
	return string(t)
}

// SequenceGroup is a legally-meaningful numbering stream. Tax invoices and
// tax invoice-receipts share one stream; receipts and credit notes each have
// their own. The mapping is fixed by regulation and never configurable.
type SequenceGroup string

const (
	SequenceGroupTaxDocument SequenceGroup = "tax_document"
	SequenceGroupReceipt     SequenceGroup = "receipt"
	SequenceGroupCreditNote  SequenceGroup = "credit_note"
)

// String returns the string representation of SequenceGroup
func (g SequenceGroup) String() string {
	return string(g)
}

// SequenceGroupFor returns the numbering stream for a document type
func SequenceGroupFor(t DocumentType) SequenceGroup {
	switch t {
	case DocumentTypeTaxInvoice, DocumentTypeTaxInvoiceReceipt:
		return SequenceGroupTaxDocument
	case DocumentTypeReceipt:
		return SequenceGroupReceipt
	case DocumentTypeCreditNote:
		return SequenceGroupCreditNote
	}
	return SequenceGroupTaxDocument
}

// DocumentSequence is the persistent counter row for one numbering stream of
// one business. NextNumber is the number that will be handed out on the next
// allocation. Rows are created lazily on first allocation and never deleted.
//
// A transaction that allocates a number and then rolls back burns that number
// permanently. Gaps are acceptable; duplicate numbers are not, so the counter
// is only ever advanced through the store's atomic upsert, never through a
// read-modify-write in application code.
type DocumentSequence struct {
	BusinessID uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Group      SequenceGroup `gorm:"column:sequence_group;type:varchar(32);primaryKey"`
	NextNumber int64         `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// AssignedNumber is the result of one sequence allocation
type AssignedNumber struct {
	SequenceNumber int64
	FullNumber     string
}

// FormatDocumentNumber renders a document number for display. The numeric
// part is zero-padded to a minimum of four digits; larger numbers are never
// truncated. A non-empty prefix is joined with a dash.
func FormatDocumentNumber(prefix string, number int64) string {
	padded := fmt.Sprintf("%04d", number)
	if prefix == "" {
		return padded
	}
	return prefix + "-" + padded
}
