// Package finance holds the pure computation core: ledger totals, document
// pricing, progress derivation and money formatting. Every function here is
// total for well-typed input and recomputed on each call; nothing is cached.
package finance

import (
	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerTotals holds the figures derived from an account's transaction log
type LedgerTotals struct {
	TotalDebt float64
	TotalPaid float64
	Balance   float64
}

// ComputeLedger derives totals from a transaction list.
// TotalDebt sums debt entries, TotalPaid sums payments, and the balance is
// their difference. An empty log yields zeros. Amounts are accumulated as
// decimals so long logs cannot drift, then rounded to 2 decimal places.
func ComputeLedger(transactions []domain.Transaction) LedgerTotals {
	debt := decimal.Zero
	paid := decimal.Zero

	for _, t := range transactions {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case domain.TransactionTypeDebt:
			debt = debt.Add(amount)
		case domain.TransactionTypePayment:
			paid = paid.Add(amount)
		}
	}

	debt = debt.Round(2)
	paid = paid.Round(2)
	balance := debt.Sub(paid)

	return LedgerTotals{
		TotalDebt: debt.InexactFloat64(),
		TotalPaid: paid.InexactFloat64(),
		Balance:   balance.InexactFloat64(),
	}
}
