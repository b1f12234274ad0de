package extractor

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
)

const (
	LabelSymbol    = "Symbol"
	LabelTimeframe = "Timeframe"
	LabelBias      = "Bias"
	LabelEntries   = "Entries"
	LabelStops     = "Stops"
	LabelStop      = "Stop"
	LabelTargets   = "Targets"
	LabelTarget    = "Target"
	LabelLevels    = "Levels"
	LabelZones     = "Zones"
	LabelZone      = "Zone"
)

var labelPatterns sync.Map // label -> *regexp.Regexp

func labelRe(label string) *regexp.Regexp {
	if re, ok := labelPatterns.Load(label); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(label) + `\s*:`)
	actual, _ := labelPatterns.LoadOrStore(label, re)
	return actual.(*regexp.Regexp)
}

// Field returns the value written after "<label>:" for the first label, in
// priority order, that has one. Matching is case-insensitive and the value
// runs to the end of the line or sentence.
func Field(text string, labels ...string) (string, bool) {
	for _, label := range labels {
		if value, ok := field(text, label); ok {
			return value, true
		}
	}
	return "", false
}

func field(text, label string) (string, bool) {
	for _, loc := range labelRe(label).FindAllStringIndex(text, -1) {
		value := strings.TrimSpace(readValue(text[loc[1]:]))
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// readValue skips leading whitespace and reads up to a newline or a period
// that ends a sentence. A period followed by a digit is a decimal point.
func readValue(rest string) string {
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '\n', '\r':
			return rest[:i]
		case '.':
			if i+1 < len(rest) && rest[i+1] >= '0' && rest[i+1] <= '9' {
				continue
			}
			return rest[:i]
		}
	}
	return rest
}
