package finance_test

import (
	"testing"

	"github.com/atelierhq/agency-api/internal/finance"
	"github.com/stretchr/testify/assert"
)

func TestFormat_KnownCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.56", finance.Format(1234.56, "USD", "$"))
	assert.Equal(t, "$0.00", finance.Format(0, "USD", "$"))
	assert.Equal(t, "$1,000,000.00", finance.Format(1000000, "usd", "$"))
}

func TestFormat_UnknownCurrencyFallsBackToSymbol(t *testing.T) {
	assert.Equal(t, "₿12,345.68", finance.Format(12345.678, "QQQ", "₿"))
	assert.Equal(t, "₿-1,234.50", finance.Format(-1234.5, "QQQ", "₿"))
	assert.Equal(t, "₿123.00", finance.Format(123, "QQQ", "₿"))
}

func TestFormat_UnknownCurrencyWithoutSymbolUsesCode(t *testing.T) {
	assert.Equal(t, "ZZZ42.00", finance.Format(42, "ZZZ", ""))
}
