// Package invoicing contains the invoice aggregate, the monetary line
// calculator and the document sequence model.
//
// All monetary amounts are integer agorot (ILS minor units). Quantities and
// discount percentages are decimals; every rounding step is explicit and
// happens inside the calculator so draft-time and finalize-time totals can
// never diverge.
package invoicing
