package engine

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatRounded rounds f to the nearest integer and groups it.
func FormatRounded(f float64) string {
	return FormatNumber(int64(math.Round(f)))
}

// FormatIrradiance rounds an irradiation figure without grouping.
func FormatIrradiance(f float64) string {
	return strconv.FormatInt(int64(math.Round(f)), 10)
}
