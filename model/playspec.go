package model

import "time"

const (
	PlaySpecVersion = "1.0"
	SourceHeuristic = "heuristic"
	DefaultSymbol   = "BTC-USD"
)

type Timeframe string

const (
	Timeframe1D  Timeframe = "1D"
	Timeframe4H  Timeframe = "4H"
	Timeframe1H  Timeframe = "1H"
	Timeframe15M Timeframe = "15M"
)

// Timeframes is the accepted set, in the order the heuristic parser probes them.
var Timeframes = []Timeframe{Timeframe1D, Timeframe4H, Timeframe1H, Timeframe15M}

type Bias string

const (
	BiasBullish Bias = "bullish"
	BiasBearish Bias = "bearish"
	BiasNeutral Bias = "neutral"
)

type LevelType string

const (
	LevelSupport    LevelType = "support"
	LevelResistance LevelType = "resistance"
	LevelTrendline  LevelType = "trendline"
)

type ZoneType string

const (
	ZoneSupply ZoneType = "supply"
	ZoneDemand ZoneType = "demand"
)

type PlayContext struct {
	ArticleID   string    `json:"articleId,omitempty"`
	Source      string    `json:"source"`
	ExtractedAt time.Time `json:"extractedAt"`
}

type Level struct {
	Type  LevelType `json:"type"`
	Price float64   `json:"price"`
	Label string    `json:"label,omitempty"`
}

type Zone struct {
	Type   ZoneType `json:"type"`
	Top    float64  `json:"top"`
	Bottom float64  `json:"bottom"`
	Label  string   `json:"label,omitempty"`
}

// PricePoint is an entry, stop or target.
type PricePoint struct {
	Price     float64 `json:"price"`
	Rationale string  `json:"rationale,omitempty"`
}

// PlaySpec is the normalized trade setup rendered on the price chart.
type PlaySpec struct {
	Version    string       `json:"version"`
	Context    PlayContext  `json:"context"`
	Symbol     string       `json:"symbol"`
	Timeframe  Timeframe    `json:"timeframe"`
	Bias       Bias         `json:"bias"`
	Indicators []string     `json:"indicators"`
	Levels     []Level      `json:"levels"`
	Zones      []Zone       `json:"zones"`
	Entries    []PricePoint `json:"entries"`
	Stops      []PricePoint `json:"stops"`
	Targets    []PricePoint `json:"targets"`
}

// IsEmpty reports whether the play carries nothing that can be drawn.
func (p *PlaySpec) IsEmpty() bool {
	return len(p.Levels) == 0 &&
		len(p.Entries) == 0 &&
		len(p.Stops) == 0 &&
		len(p.Targets) == 0 &&
		len(p.Zones) == 0
}

// --- Huma Structs ---

// VisualizeRequest is the body accepted by the visualize endpoint. Content is
// either a string (plain text or serialized rich-text JSON) or an inline
// rich-text document.
type VisualizeRequest struct {
	ArticleID string `json:"articleId,omitempty" doc:"Article being visualized"`
	Content   any    `json:"content,omitempty" doc:"Article body, plain text or rich-text JSON"`
	Symbol    string `json:"symbol,omitempty" example:"BTC-USD"`
	Timeframe string `json:"timeframe,omitempty" example:"1D"`
}

// VisualizePayload is what gets forwarded to the AI function.
type VisualizePayload struct {
	ArticleID string `json:"articleId,omitempty"`
	Content   string `json:"content,omitempty"`
	Symbol    string `json:"symbol,omitempty"`
	Timeframe string `json:"timeframe,omitempty"`
}

// UpstreamResult is the raw reply of the AI function.
type UpstreamResult struct {
	StatusCode int
	Body       []byte
}

func (r *UpstreamResult) IsSuccess() bool {
	return r.StatusCode > 199 && r.StatusCode < 300
}

type VisualizeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Cookie        string `header:"Cookie"`
	Body          VisualizeRequest
}
