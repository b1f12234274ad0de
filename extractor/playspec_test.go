package extractor

import (
	"errors"
	"testing"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPlay = `Monday Sippin' weekly.
Symbol: ETH-USD, spot
Timeframe: 4h
Bias: Bullish continuation
Entries: 3,350 / 3,300
Stops: 3,150
Targets: 3,600 / 3,800 (50%)
Levels: support 3,200, resistance 3,700
Zones: demand 3,250 to 3,350
`

func TestExtract_FullPlay(t *testing.T) {
	fixed := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	spec, err := Extract(fullPlay)
	require.NoError(t, err)

	assert.Equal(t, &model.PlaySpec{
		Version: model.PlaySpecVersion,
		Context: model.PlayContext{
			Source:      model.SourceHeuristic,
			ExtractedAt: fixed,
		},
		Symbol:     "ETH-USD",
		Timeframe:  model.Timeframe4H,
		Bias:       model.BiasBullish,
		Indicators: []string{},
		Levels: []model.Level{
			{Type: model.LevelSupport, Price: 3200},
			{Type: model.LevelResistance, Price: 3700},
		},
		Zones:   []model.Zone{{Type: model.ZoneDemand, Top: 3350, Bottom: 3250}},
		Entries: []model.PricePoint{{Price: 3350}, {Price: 3300}},
		Stops:   []model.PricePoint{{Price: 3150}},
		Targets: []model.PricePoint{{Price: 3600}, {Price: 3800}},
	}, spec)
}

func TestExtract_Defaults(t *testing.T) {
	spec, err := Extract("Entries: 98,800")
	require.NoError(t, err)

	assert.Equal(t, model.DefaultSymbol, spec.Symbol)
	assert.Equal(t, model.Timeframe1D, spec.Timeframe)
	assert.Equal(t, model.BiasNeutral, spec.Bias)
	assert.Equal(t, []model.PricePoint{{Price: 98800}}, spec.Entries)
	assert.NotNil(t, spec.Levels)
	assert.NotNil(t, spec.Zones)
	assert.Empty(t, spec.Indicators)
}

func TestExtract_SingularLabels(t *testing.T) {
	spec, err := Extract("Stop: 95,000\nTarget: 110,000\nZone: supply 108,000-110,000")
	require.NoError(t, err)

	assert.Equal(t, []model.PricePoint{{Price: 95000}}, spec.Stops)
	assert.Equal(t, []model.PricePoint{{Price: 110000}}, spec.Targets)
	assert.Equal(t, []model.Zone{{Type: model.ZoneSupply, Top: 110000, Bottom: 108000}}, spec.Zones)
}

func TestExtract_BiasAndTimeframe(t *testing.T) {
	tests := []struct {
		text      string
		bias      model.Bias
		timeframe model.Timeframe
	}{
		{text: "Bias: BEARISH\nTimeframe: 1H\nEntries: 1,000", bias: model.BiasBearish, timeframe: model.Timeframe1H},
		{text: "Bias: range\nTimeframe: 15m scalp\nEntries: 1,000", bias: model.BiasNeutral, timeframe: model.Timeframe15M},
		{text: "Bias: bulls in control\nTimeframe: weekly\nEntries: 1,000", bias: model.BiasBullish, timeframe: model.Timeframe1D},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			spec, err := Extract(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.bias, spec.Bias)
			assert.Equal(t, tt.timeframe, spec.Timeframe)
		})
	}
}

func TestExtract_NoSignal(t *testing.T) {
	tests := []string{
		"",
		"Bitcoin had a quiet week and we are watching for a breakout",
		"Symbol: BTC-USD\nBias: bullish\nTimeframe: 4H",
		"Entries: tbd",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			spec, err := Extract(text)
			assert.Nil(t, spec)
			assert.True(t, errors.Is(err, ErrNoSignal))
			assert.Nil(t, ExtractPlaySpec(text))
		})
	}
}

func TestExtract_RecoversPanics(t *testing.T) {
	now = func() time.Time { panic("clock broke") }
	t.Cleanup(func() { now = time.Now })

	spec, err := Extract("Entries: 98,800")
	assert.Nil(t, spec)

	var failure *ParseFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "clock broke", failure.Cause)
	assert.Nil(t, ExtractPlaySpec("Entries: 98,800"))
}
