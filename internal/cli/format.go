// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a decimal amount with the currency symbol.
// e.g., 1234.5 -> "$1,234.50"
func FormatAmount(symbol string, d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	n, _ := strconv.ParseInt(intPart, 10, 64)
	formatted := symbol + FormatNumber(n) + "." + fracPart
	if d.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// FormatSignedAmount formats an amount with an explicit leading sign.
// e.g., 150 -> "+$150.00", -75 -> "-$75.00"
func FormatSignedAmount(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return FormatAmount(symbol, d)
	}
	return "+" + FormatAmount(symbol, d)
}

// FormatMonths formats a month count as a duration.
// e.g., 1 -> "1 month", 14 -> "1y 2m"
func FormatMonths(months int) string {
	if months <= 0 {
		return "0 months"
	}
	if months == 1 {
		return "1 month"
	}
	if months < 12 {
		return fmt.Sprintf("%d months", months)
	}
	years := months / 12
	rest := months % 12
	if rest == 0 {
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dy %dm", years, rest)
}

// FormatMonth formats a month as "Jan 2026".
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
