package finance

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format renders an amount for display with a currency symbol, thousands
// grouping and two fixed decimals. Known ISO codes go through go-money so
// grouping and symbol placement follow the currency's own rules; anything
// else falls back to the document's stored symbol prefixed to a manually
// grouped figure. Total function: any float in, a string out.
func Format(amount float64, code, symbol string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if c := money.GetCurrency(code); c != nil {
		minor := decimal.NewFromFloat(amount).
			Mul(decimal.New(1, int32(c.Fraction))).
			Round(0).
			IntPart()
		return money.New(minor, code).Display()
	}

	if symbol == "" {
		symbol = code
	}
	return symbol + groupDigits(decimal.NewFromFloat(amount).StringFixed(2))
}

// groupDigits inserts comma separators into a fixed-2-decimal figure
func groupDigits(fixed string) string {
	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteString(fracPart)
	return b.String()
}
