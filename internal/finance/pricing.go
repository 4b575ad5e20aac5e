package finance

import (
	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/shopspring/decimal"
)

// DocumentTotals holds the derived totals of a priced document.
// TaxVisible mirrors the document's show-tax flag: when false the tax line
// is absent from display, not shown as zero.
type DocumentTotals struct {
	Subtotal   float64
	Tax        float64
	Total      float64
	TaxVisible bool
}

// LineTotal prices a single line item. A positive unit price means
// quantity * unitPrice; a zero unit price marks a manually-totalled line
// whose stored total is authoritative.
func LineTotal(item domain.ProposalItem) float64 {
	return lineTotal(item).InexactFloat64()
}

func lineTotal(item domain.ProposalItem) decimal.Decimal {
	if item.UnitPrice > 0 {
		qty := decimal.NewFromFloat(item.Quantity)
		price := decimal.NewFromFloat(item.UnitPrice)
		return qty.Mul(price).Round(2)
	}
	return decimal.NewFromFloat(item.Total).Round(2)
}

// PriceDocument derives subtotal, tax and total for a proposal or invoice
// style document.
//
// With useDirectTotal the subtotal is the operator-entered totalAmount and
// line items are descriptive only; otherwise the subtotal sums the line
// totals under the LineTotal rule. Tax applies only while showTax is set:
// a hidden tax contributes nothing to the total regardless of taxRate.
// Switching modes never touches line item data, it only changes which value
// drives the subtotal. Empty item list in per-item mode prices to zero.
func PriceDocument(items []domain.ProposalItem, useDirectTotal bool, totalAmount, taxRate float64, showTax bool) DocumentTotals {
	var subtotal decimal.Decimal

	if useDirectTotal {
		subtotal = decimal.NewFromFloat(totalAmount).Round(2)
	} else {
		subtotal = decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(lineTotal(item))
		}
		subtotal = subtotal.Round(2)
	}

	tax := decimal.Zero
	if showTax {
		rate := decimal.NewFromFloat(taxRate).Div(decimal.NewFromInt(100))
		tax = subtotal.Mul(rate).Round(2)
	}

	total := subtotal.Add(tax)

	return DocumentTotals{
		Subtotal:   subtotal.InexactFloat64(),
		Tax:        tax.InexactFloat64(),
		Total:      total.InexactFloat64(),
		TaxVisible: showTax,
	}
}
