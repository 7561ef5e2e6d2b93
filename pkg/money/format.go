package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders m for display with a dollar sign, thousands separators and
// two decimals, e.g. "$10,530.06". Negative amounts carry a leading minus.
func Format(m Money) string {
	return FormatAmount(m.amount)
}

// FormatAmount renders a decimal amount in es-MX peso notation.
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(groupThousands(intPart))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders a nominal percentage with two decimals, e.g. "12.50%".
func FormatPercent(percent float64) string {
	return decimal.NewFromFloat(percent).StringFixed(2) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
