package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the specified precision and thousand separators.
// Example: FormatFloat(86245, 2) returns "86,245.00".
func FormatFloat(f float64, precision int) string {
	rounded := roundTo(f, precision)
	if precision <= 0 {
		return FormatNumber(int64(rounded))
	}

	formatted := strconv.FormatFloat(math.Abs(rounded), 'f', precision, 64)
	intPart, decPart, _ := strings.Cut(formatted, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return strconv.FormatFloat(rounded, 'f', precision, 64)
	}

	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	return sign + printer.Sprintf("%d", n) + "." + decPart
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values at or above BillionThreshold use "~X.X billion", values at or above
// LargeNumberThreshold use "~X.X million", anything smaller is comma-separated.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}

// RoundKg rounds a kg amount to DisplayPrecision decimals, half away from zero.
func RoundKg(kg float64) float64 {
	return roundTo(kg, DisplayPrecision)
}

// FormatKg renders a kg amount the way the usage log and result line show it:
// rounded to DisplayPrecision decimals, shortest form, always with a decimal
// point. FormatKg(86245) returns "86245.0" and FormatKg(1234.5678) "1234.57".
func FormatKg(kg float64) string {
	s := strconv.FormatFloat(RoundKg(kg), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func roundTo(f float64, precision int) float64 {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	return math.Round(f*multiplier) / multiplier
}
