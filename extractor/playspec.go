// Package extractor pulls trade setups out of free-form article text using
// labeled fields ("Entries: 98,800 / 97,500") and price-level phrases.
package extractor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/model"
)

// ErrNoSignal means the text was read fine but held nothing chartable.
var ErrNoSignal = errors.New("no actionable play found in text")

// ParseFailure wraps a panic raised while reading the text.
type ParseFailure struct {
	Cause any
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("play extraction failed: %v", e.Cause)
}

// now is swapped in tests.
var now = time.Now

// ExtractPlaySpec returns the heuristic play spec for text, or nil when the
// text has no actionable levels, zones, entries, stops or targets.
func ExtractPlaySpec(text string) *model.PlaySpec {
	spec, err := Extract(text)
	if err != nil {
		return nil
	}
	return spec
}

// Extract is ExtractPlaySpec with the reason for a nil result: ErrNoSignal or
// a *ParseFailure.
func Extract(text string) (spec *model.PlaySpec, err error) {
	defer func() {
		if r := recover(); r != nil {
			spec, err = nil, &ParseFailure{Cause: r}
		}
	}()

	spec = &model.PlaySpec{
		Version: model.PlaySpecVersion,
		Context: model.PlayContext{
			Source:      model.SourceHeuristic,
			ExtractedAt: now().UTC(),
		},
		Symbol:     symbol(text),
		Timeframe:  timeframe(text),
		Bias:       bias(text),
		Indicators: []string{},
		Levels:     []model.Level{},
		Zones:      []model.Zone{},
		Entries:    pricePoints(text, LabelEntries),
		Stops:      pricePoints(text, LabelStops, LabelStop),
		Targets:    pricePoints(text, LabelTargets, LabelTarget),
	}

	if levels, ok := Field(text, LabelLevels); ok {
		spec.Levels = ExtractLevels(levels)
	}
	if zones, ok := Field(text, LabelZones, LabelZone); ok {
		if zone, found := ExtractZone(zones); found {
			spec.Zones = append(spec.Zones, zone)
		}
	}

	if spec.IsEmpty() {
		return nil, ErrNoSignal
	}
	return spec, nil
}

func symbol(text string) string {
	value, ok := Field(text, LabelSymbol)
	if !ok {
		return model.DefaultSymbol
	}
	token := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(token) == 0 {
		return model.DefaultSymbol
	}
	return token[0]
}

func timeframe(text string) model.Timeframe {
	value, ok := Field(text, LabelTimeframe)
	if !ok {
		return model.Timeframe1D
	}
	value = strings.ToUpper(value)
	for _, tf := range model.Timeframes {
		if strings.Contains(value, string(tf)) {
			return tf
		}
	}
	return model.Timeframe1D
}

func bias(text string) model.Bias {
	value, ok := Field(text, LabelBias)
	if !ok {
		return model.BiasNeutral
	}
	value = strings.ToLower(value)
	switch {
	case strings.Contains(value, "bull"):
		return model.BiasBullish
	case strings.Contains(value, "bear"):
		return model.BiasBearish
	default:
		return model.BiasNeutral
	}
}

func pricePoints(text string, labels ...string) []model.PricePoint {
	points := make([]model.PricePoint, 0)
	value, ok := Field(text, labels...)
	if !ok {
		return points
	}
	for _, price := range ExtractPrices(value) {
		points = append(points, model.PricePoint{Price: price})
	}
	return points
}
