// Package cli provides parsing, formatting and rendering utilities for
// terminal output.
package cli

import (
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the single currency allot displays.
const Currency = money.USD

// maxCents bounds the amounts go-money can hold as int64 cents.
var maxCents = decimal.NewFromInt(math.MaxInt64)

// FormatMoney formats a monthly or annual amount with cents,
// e.g. 1750 -> "$1,750.00".
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$--"
	}
	d := decimal.NewFromFloat(v).Round(2)
	cents := d.Shift(2)
	if cents.Abs().LessThanOrEqual(maxCents) {
		return money.New(cents.IntPart(), Currency).Display()
	}
	return signed(d, groupDigits(d.Abs().StringFixed(2)))
}

// FormatDollars formats an amount rounded to whole dollars,
// e.g. 1750.4 -> "$1,750". Used where columns are tight.
func FormatDollars(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$--"
	}
	d := decimal.NewFromFloat(v).Round(0)
	return signed(d, groupDigits(d.Abs().String()))
}

// FormatSignedDollars prefixes a sign, with "±$0" for zero.
func FormatSignedDollars(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$--"
	}
	switch decimal.NewFromFloat(v).Round(0).Sign() {
	case 1:
		return "+" + FormatDollars(v)
	case -1:
		return FormatDollars(v)
	default:
		return "±$0"
	}
}

func signed(d decimal.Decimal, digits string) string {
	if d.Sign() < 0 {
		return "-$" + digits
	}
	return "$" + digits
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + groupDigits(strconv.FormatUint(uint64(-(n+1))+1, 10))
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

// groupDigits inserts commas into the integer part of an unsigned decimal
// string, keeping any fraction as is.
func groupDigits(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(intPart) % 3
	if remainder > 0 {
		result.WriteString(intPart[:remainder])
	}
	for i := remainder; i < len(intPart); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		result.WriteByte('.')
		result.WriteString(frac)
	}
	return result.String()
}

// FormatPercent formats a 0-100 share with the given number of decimals.
func FormatPercent(pct float64, places int32) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "--%"
	}
	return decimal.NewFromFloat(pct).StringFixed(places) + "%"
}

// ParseNumber reads user-typed numeric input such as "1,250", "$80.5" or
// "35%". Anything that is not a number returns NaN, which the allocation
// engine treats as a rejected edit.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return math.NaN()
	}
	return d.InexactFloat64()
}
