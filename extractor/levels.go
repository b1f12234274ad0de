package extractor

import (
	"math"
	"regexp"
	"strings"

	"github.com/DaUnderlord/monday-sippin-sub000/model"
)

var (
	supportRe    = regexp.MustCompile(`(?i)support\s*:?\s*(` + numberPattern + `)`)
	resistanceRe = regexp.MustCompile(`(?i)resistance\s*:?\s*(` + numberPattern + `)`)
	zoneRe       = regexp.MustCompile(`(?i)supply|demand`)
)

// ExtractLevels finds "support <price>" and "resistance <price>" mentions.
// All support levels come first, each group in text order.
func ExtractLevels(text string) []model.Level {
	levels := make([]model.Level, 0)
	levels = appendLevels(levels, supportRe, text, model.LevelSupport)
	levels = appendLevels(levels, resistanceRe, text, model.LevelResistance)
	return levels
}

func appendLevels(levels []model.Level, re *regexp.Regexp, text string, kind model.LevelType) []model.Level {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		price, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		levels = append(levels, model.Level{Type: kind, Price: price})
	}
	return levels
}

// ExtractZone reads the first "<supply|demand> <a> ... <b>" phrase. Top is the
// larger bound whichever order the text gives them in.
// TODO: emit every zone phrase once multi-zone articles have a product answer.
func ExtractZone(text string) (model.Zone, bool) {
	loc := zoneRe.FindStringIndex(text)
	if loc == nil {
		return model.Zone{}, false
	}

	bounds := numberRe.FindAllString(text[loc[1]:], 2)
	if len(bounds) < 2 {
		return model.Zone{}, false
	}

	a, okA := parseNumber(bounds[0])
	b, okB := parseNumber(bounds[1])
	if !okA || !okB {
		return model.Zone{}, false
	}

	return model.Zone{
		Type:   model.ZoneType(strings.ToLower(text[loc[0]:loc[1]])),
		Top:    math.Max(a, b),
		Bottom: math.Min(a, b),
	}, true
}
