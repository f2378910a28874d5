// Package amount normalizes dollar-amount tokens extracted from statement text.
package amount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize converts a dollar-amount token into a signed decimal value.
//
// It accepts the formats the statement layout produces: "$1,234.56",
// "-$1,234.56", "($1,234.56)", "1234.56". Empty or sign-only tokens and
// tokens with residual non-numeric content degrade to zero rather than
// returning an error, so a single bad field never aborts a document.
func Normalize(text string) decimal.Decimal {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Zero
	}

	cleaned := strings.ReplaceAll(trimmed, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" || cleaned == "-" {
		return decimal.Zero
	}

	// Parenthesized amounts are negative: (500.00) -> -500.00
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}

	// A leading minus on the original token wins, without double negation:
	// -$1,010.29 -> -1010.29
	if strings.HasPrefix(trimmed, "-") {
		cleaned = "-" + strings.TrimLeft(cleaned, "-")
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// NormalizeFloat is a convenience wrapper for callers that store float64.
func NormalizeFloat(text string) float64 {
	f, _ := Normalize(text).Float64()
	return f
}
