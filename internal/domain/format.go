package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatHours prints hours the way a browser prints a number, with an "hrs" suffix.
// Examples: 10 -> "10hrs", 1.5 -> "1.5hrs", 1e21 -> "1e+21hrs"
func FormatHours(h float64) string {
	return formatNumber(h) + "hrs"
}

// formatNumber uses the shortest round-trip digits, switching to exponent
// form outside [1e-6, 1e21) like ECMAScript Number::toString.
func formatNumber(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// CurrentText is the text shown in a card's current-value region.
func CurrentText(p Period) string {
	return FormatHours(p.Current)
}

// PreviousText combines the previous-period label with the previous value.
// Example: weekly, 8 -> "Last Week - 8hrs"
func PreviousText(tf Timeframe, p Period) string {
	return fmt.Sprintf("%s - %s", tf.PreviousLabel(), FormatHours(p.Previous))
}
