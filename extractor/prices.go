package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches a price written with optional thousands grouping and
// an optional fraction: 98,800 / 98800 / 3,350.25 / 0.5.
const numberPattern = `\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`

const (
	// Lists containing a value above priceFloor are price lists, so values at
	// or under noiseCeiling in them are RSI readings or percentages.
	priceFloor   = 500
	noiseCeiling = 100
)

var (
	numberRe        = regexp.MustCompile(numberPattern)
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	// Commas are turned into semicolons by markListCommas before splitting.
	listDelimiterRe = regexp.MustCompile(`(?i)\s*(?:/|;|\band\b|\bor\b)\s*`)
)

// ExtractPrices parses a delimited list of prices, keeping text order.
func ExtractPrices(text string) []float64 {
	if strings.TrimSpace(text) == "" {
		return []float64{}
	}

	cleaned := markListCommas(parentheticalRe.ReplaceAllString(text, " "))

	values := make([]float64, 0)
	for _, part := range listDelimiterRe.Split(cleaned, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, ok := parseNumber(numberRe.FindString(part))
		if !ok {
			continue
		}
		values = append(values, v)
	}

	return dropNoise(values)
}

// markListCommas rewrites every comma that separates list items as ";".
// A comma stays only as a thousands separator: one to three digits with no
// decimal point before it, exactly three digits and then a non-digit after.
// "102,500" and "1,234,567" keep their commas; "98800,97500", "45,55" and
// "1.5,2.5" are split.
func markListCommas(text string) string {
	b := []byte(text)
	for i, c := range b {
		if c == ',' && !isGroupingComma(b, i) {
			b[i] = ';'
		}
	}
	return string(b)
}

func isGroupingComma(b []byte, i int) bool {
	start := i
	for start > 0 && isDigit(b[start-1]) {
		start--
	}
	run := i - start
	if run < 1 || run > 3 {
		return false
	}
	if start > 0 && b[start-1] == '.' {
		return false
	}

	if i+3 >= len(b) {
		return false
	}
	for j := i + 1; j <= i+3; j++ {
		if !isDigit(b[j]) {
			return false
		}
	}
	return i+4 == len(b) || !isDigit(b[i+4])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func dropNoise(values []float64) []float64 {
	hasPrice := false
	for _, v := range values {
		if v > priceFloor {
			hasPrice = true
			break
		}
	}
	if !hasPrice {
		return values
	}

	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if v > noiseCeiling {
			kept = append(kept, v)
		}
	}
	return kept
}

// parseNumber converts a numberPattern match. Zero counts as no value.
func parseNumber(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}
