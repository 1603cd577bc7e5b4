package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	stripPattern  = regexp.MustCompile(`[^\d,.\s]`)
	amountPattern = regexp.MustCompile(`\d+(\.\d{1,2})?`)
)

// ParsePrice normalizes localized price text ("12,50 €") into a numeric
// amount. It returns nil when the text is empty or contains no number.
//
// The decimal separator is assumed to be a comma; every comma becomes a
// period before matching. Thousands separators are not reconstructed:
// "1 234,90" parses as 1.0 and "1.234,50" as 1.23, because only the
// first integer-plus-optional-two-decimals run is taken. Callers that
// need four-digit prices must normalize the text first.
func ParsePrice(text string) *float64 {
	if text == "" {
		return nil
	}

	cleaned := strings.TrimSpace(stripPattern.ReplaceAllString(text, ""))
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	match := amountPattern.FindString(cleaned)
	if match == "" {
		return nil
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}

	return &value
}
