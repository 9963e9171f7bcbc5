package reporting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"trade-journal/internal/domain"
)

// FormatMoney renders v with two decimals, thousands separators and a
// leading sign for losses: -$1,234.50.
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

// FormatPercent renders a 0-100 percentage with one decimal.
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// FormatRatio renders a ratio with two decimals; the infinite sentinel is
// shown as "inf".
func FormatRatio(v float64) string {
	if v >= domain.InfiniteRatio {
		return "inf"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatR renders an optional R-multiple.
func FormatR(r *float64) string {
	if r == nil {
		return "-"
	}
	return decimal.NewFromFloat(*r).StringFixed(2) + "R"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

func optionalFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%g", *p)
}
