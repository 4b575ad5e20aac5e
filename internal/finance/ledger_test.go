package finance_test

import (
	"testing"

	"github.com/atelierhq/agency-api/internal/domain"
	"github.com/atelierhq/agency-api/internal/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestComputeLedger_DebtAndPayment(t *testing.T) {
	transactions := []domain.Transaction{
		{Type: domain.TransactionTypeDebt, Amount: 5000},
		{Type: domain.TransactionTypePayment, Amount: 2000},
	}

	totals := finance.ComputeLedger(transactions)

	assert.Equal(t, 5000.0, totals.TotalDebt)
	assert.Equal(t, 2000.0, totals.TotalPaid)
	assert.Equal(t, 3000.0, totals.Balance)
}

func TestComputeLedger_EmptyLog(t *testing.T) {
	totals := finance.ComputeLedger(nil)

	assert.Equal(t, 0.0, totals.TotalDebt)
	assert.Equal(t, 0.0, totals.TotalPaid)
	assert.Equal(t, 0.0, totals.Balance)
}

func TestComputeLedger_PaymentsExceedDebt(t *testing.T) {
	transactions := []domain.Transaction{
		{Type: domain.TransactionTypeDebt, Amount: 100},
		{Type: domain.TransactionTypePayment, Amount: 250.50},
	}

	totals := finance.ComputeLedger(transactions)

	assert.Equal(t, 100.0, totals.TotalDebt)
	assert.Equal(t, 250.50, totals.TotalPaid)
	assert.Equal(t, -150.50, totals.Balance)
}

func TestComputeLedger_CentAmountsDoNotDrift(t *testing.T) {
	// 0.1 + 0.2 style float traps must not leak into the totals
	transactions := []domain.Transaction{
		{Type: domain.TransactionTypeDebt, Amount: 0.1},
		{Type: domain.TransactionTypeDebt, Amount: 0.2},
	}

	totals := finance.ComputeLedger(transactions)

	assert.Equal(t, 0.3, totals.TotalDebt)
	assert.Equal(t, 0.3, totals.Balance)
}

// drawTransactions generates a list of valid (non-negative, 2dp) ledger entries
func drawTransactions(t *rapid.T, label string) []domain.Transaction {
	count := rapid.IntRange(0, 50).Draw(t, label+"_count")
	transactions := make([]domain.Transaction, count)
	for i := range transactions {
		cents := rapid.Int64Range(0, 10_000_000).Draw(t, label+"_cents")
		typ := domain.TransactionTypeDebt
		if rapid.Bool().Draw(t, label+"_is_payment") {
			typ = domain.TransactionTypePayment
		}
		transactions[i] = domain.Transaction{
			Type:   typ,
			Amount: float64(cents) / 100,
		}
	}
	return transactions
}

func TestComputeLedger_BalanceIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		transactions := drawTransactions(t, "tx")

		totals := finance.ComputeLedger(transactions)

		wantDebt := decimal.Zero
		wantPaid := decimal.Zero
		for _, tx := range transactions {
			amount := decimal.NewFromFloat(tx.Amount)
			if tx.Type == domain.TransactionTypeDebt {
				wantDebt = wantDebt.Add(amount)
			} else {
				wantPaid = wantPaid.Add(amount)
			}
		}

		assert.True(t, decimal.NewFromFloat(totals.TotalDebt).Equal(wantDebt),
			"totalDebt %v != sum of debt entries %v", totals.TotalDebt, wantDebt)
		assert.True(t, decimal.NewFromFloat(totals.TotalPaid).Equal(wantPaid),
			"totalPaid %v != sum of payment entries %v", totals.TotalPaid, wantPaid)

		wantBalance := decimal.NewFromFloat(totals.TotalDebt).
			Sub(decimal.NewFromFloat(totals.TotalPaid))
		assert.True(t, decimal.NewFromFloat(totals.Balance).Equal(wantBalance),
			"balance %v != totalDebt - totalPaid", totals.Balance)
	})
}

func TestComputeLedger_AppendDoesNotRewriteHistory(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		transactions := drawTransactions(t, "tx")
		before := finance.ComputeLedger(transactions)

		cents := rapid.Int64Range(0, 10_000_000).Draw(t, "appended_cents")
		appended := domain.Transaction{
			Type:   domain.TransactionTypeDebt,
			Amount: float64(cents) / 100,
		}
		after := finance.ComputeLedger(append(transactions, appended))

		// The appended entry contributes exactly its own amount; everything
		// already in the log is unchanged.
		wantDebt := decimal.NewFromFloat(before.TotalDebt).
			Add(decimal.NewFromFloat(appended.Amount))
		assert.True(t, decimal.NewFromFloat(after.TotalDebt).Equal(wantDebt))
		assert.Equal(t, before.TotalPaid, after.TotalPaid)
	})
}
