package finance_test

import (
	"testing"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/finance"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		item domain.ProposalItem
		want float64
	}{
		{
			name: "unit priced line multiplies quantity and price",
			item: domain.ProposalItem{Quantity: 2, UnitPrice: 100, Total: 0},
			want: 200,
		},
		{
			name: "zero unit price takes stored total verbatim",
			item: domain.ProposalItem{Quantity: 1, UnitPrice: 0, Total: 500},
			want: 500,
		},
		{
			name: "stored total ignored when unit price set",
			item: domain.ProposalItem{Quantity: 3, UnitPrice: 50, Total: 999},
			want: 150,
		},
		{
			name: "fractional quantity rounds to cents",
			item: domain.ProposalItem{Quantity: 2.5, UnitPrice: 33.33},
			want: 83.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, finance.LineTotal(tt.item))
		})
	}
}

func TestPriceDocument_PerItemWithTax(t *testing.T) {
	items := []domain.ProposalItem{
		{Quantity: 2, UnitPrice: 100, Total: 0},
	}

	totals := finance.PriceDocument(items, false, 0, 20, true)

	assert.Equal(t, 200.0, totals.Subtotal)
	assert.Equal(t, 40.0, totals.Tax)
	assert.Equal(t, 240.0, totals.Total)
	assert.True(t, totals.TaxVisible)
}

func TestPriceDocument_MixedUnitAndManualLines(t *testing.T) {
	items := []domain.ProposalItem{
		{Quantity: 2, UnitPrice: 100},
		{Quantity: 1, UnitPrice: 0, Total: 500},
	}

	totals := finance.PriceDocument(items, false, 0, 0, false)

	assert.Equal(t, 700.0, totals.Subtotal)
	assert.Equal(t, 700.0, totals.Total)
	assert.False(t, totals.TaxVisible)
}

func TestPriceDocument_DirectTotalIgnoresItems(t *testing.T) {
	items := []domain.ProposalItem{
		{Quantity: 99, UnitPrice: 1234, Total: 0},
	}

	totals := finance.PriceDocument(items, true, 10000, 0, false)

	assert.Equal(t, 10000.0, totals.Subtotal)
	assert.Equal(t, 10000.0, totals.Total)
}

func TestPriceDocument_EmptyItemsPerItemMode(t *testing.T) {
	totals := finance.PriceDocument(nil, false, 0, 25, true)

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Tax)
	assert.Equal(t, 0.0, totals.Total)
}

func TestPriceDocument_HiddenTaxNeverContributes(t *testing.T) {
	items := []domain.ProposalItem{{Quantity: 1, UnitPrice: 100}}

	totals := finance.PriceDocument(items, false, 0, 25, false)

	assert.Equal(t, totals.Subtotal, totals.Total)
	assert.Equal(t, 0.0, totals.Tax)
	assert.False(t, totals.TaxVisible)
}

func drawItems(t *rapid.T) []domain.ProposalItem {
	count := rapid.IntRange(0, 10).Draw(t, "item_count")
	items := make([]domain.ProposalItem, count)
	for i := range items {
		items[i] = domain.ProposalItem{
			Quantity:  float64(rapid.Int64Range(0, 1000).Draw(t, "qty")),
			UnitPrice: float64(rapid.Int64Range(0, 1_000_000).Draw(t, "price_cents")) / 100,
			Total:     float64(rapid.Int64Range(0, 1_000_000).Draw(t, "total_cents")) / 100,
		}
	}
	return items
}

func TestPriceDocument_ModeExclusivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := drawItems(t)
		totalAmount := float64(rapid.Int64Range(0, 100_000_000).Draw(t, "direct_cents")) / 100
		taxRate := float64(rapid.Int64Range(0, 100).Draw(t, "tax_rate"))
		showTax := rapid.Bool().Draw(t, "show_tax")

		// Direct mode: item edits must not move the subtotal
		direct := finance.PriceDocument(items, true, totalAmount, taxRate, showTax)
		directNoItems := finance.PriceDocument(nil, true, totalAmount, taxRate, showTax)
		assert.Equal(t, directNoItems.Subtotal, direct.Subtotal)

		// Per-item mode: the document totalAmount must not move the subtotal
		perItem := finance.PriceDocument(items, false, totalAmount, taxRate, showTax)
		perItemZero := finance.PriceDocument(items, false, 0, taxRate, showTax)
		assert.Equal(t, perItemZero.Subtotal, perItem.Subtotal)
	})
}

func TestPriceDocument_TaxToggleEquality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := drawItems(t)
		taxRate := float64(rapid.Int64Range(0, 100).Draw(t, "tax_rate"))

		hidden := finance.PriceDocument(items, false, 0, taxRate, false)
		assert.Equal(t, hidden.Subtotal, hidden.Total,
			"hidden tax must leave total == subtotal at rate %v", taxRate)
	})
}
