package invoicing

import (
	"github.com/shopspring/decimal"
)

// LineAmounts holds the computed monetary fields of a single line item.
// All values are integer agorot.
type LineAmounts struct {
	Gross            int64 // quantity x unit price, rounded
	Discount         int64 // discount computed from the rounded gross
	LineTotal        int64 // gross - discount
	VATAmount        int64 // VAT computed from the line total
	LineTotalInclVAT int64 // line total + VAT
}

// InvoiceTotals holds the invoice-level sums of the per-line amounts.
type InvoiceTotals struct {
	Subtotal       int64 // sum of line gross amounts
	DiscountTotal  int64 // sum of line discounts
	TotalBeforeVAT int64 // sum of line totals
	VATTotal       int64 // sum of line VAT amounts
	Total          int64 // sum of line totals including VAT
}

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
)

// CalculateLine computes the monetary fields of one line item.
//
// The rounding order is the contract: the gross amount is rounded to whole
// agorot before the discount is computed from it, and the line total is
// rounded before VAT is computed from it. Rounding only once at the end
// produces totals that differ by single agorot and do not match the issued
// document. Rounding is half away from zero at every step.
//
// quantity may be fractional, unitPrice is agorot, discountPercent is a
// percentage in [0,100] and vatRate is in basis points (10000 = 100%).
// Inputs are assumed pre-validated by the caller.
func CalculateLine(quantity decimal.Decimal, unitPrice int64, discountPercent decimal.Decimal, vatRate int64) LineAmounts {
	gross := quantity.
		Mul(decimal.NewFromInt(unitPrice)).
		Round(0).IntPart()

	discount := decimal.NewFromInt(gross).
		Mul(discountPercent).
		Div(hundred).
		Round(0).IntPart()

	lineTotal := gross - discount

	vat := decimal.NewFromInt(lineTotal).
		Mul(decimal.NewFromInt(vatRate)).
		Div(tenThousand).
		Round(0).IntPart()

	return LineAmounts{
		Gross:            gross,
		Discount:         discount,
		LineTotal:        lineTotal,
		VATAmount:        vat,
		LineTotalInclVAT: lineTotal + vat,
	}
}

// CalculateInvoiceTotals recomputes every item from its raw inputs and sums
// the per-line amounts field by field. The aggregate is never re-rounded.
// An empty item list yields all zeros.
func CalculateInvoiceTotals(items []InvoiceItem) InvoiceTotals {
	var totals InvoiceTotals
	for _, item := range items {
		amounts := CalculateLine(item.Quantity, item.UnitPrice, item.DiscountPercent, item.VATRate)
		totals.Subtotal += amounts.Gross
		totals.DiscountTotal += amounts.Discount
		totals.TotalBeforeVAT += amounts.LineTotal
		totals.VATTotal += amounts.VATAmount
		totals.Total += amounts.LineTotalInclVAT
	}
	return totals
}
