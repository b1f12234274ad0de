package validator

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/Oudwins/zog"
)

var PricePointShape = zog.Shape{
	"Price": zog.Float64().Required().GT(0),
}

var LevelShape = zog.Shape{
	"Price": zog.Float64().Required().GT(0),
}

var ZoneShape = zog.Shape{
	"Top":    zog.Float64().Required().GT(0),
	"Bottom": zog.Float64().Required().GT(0),
}

var PlayContextShape = zog.Shape{
	"Source": zog.String().Required(),
}

var PlaySpecShape = zog.Shape{
	"Version": zog.String().Required().OneOf([]string{model.PlaySpecVersion}),
	"Symbol":  zog.String().Required(),
	"Context": zog.Struct(PlayContextShape),
	"Levels":  zog.Slice(zog.Struct(LevelShape)),
	"Zones":   zog.Slice(zog.Struct(ZoneShape)),
	"Entries": zog.Slice(zog.Struct(PricePointShape)),
	"Stops":   zog.Slice(zog.Struct(PricePointShape)),
	"Targets": zog.Slice(zog.Struct(PricePointShape)),
}

var playSpecSchema = zog.Struct(PlaySpecShape).TestFunc(PlaySpecEnumTest)

// PlaySpecEnumTest checks the enum-typed fields and zone ordering, which the
// field shapes cannot express.
func PlaySpecEnumTest(dataPtr any, ctx zog.Ctx) bool {
	spec, ok := dataPtr.(*model.PlaySpec)
	if !ok {
		return true
	}

	valid := true
	fail := func(path, msg string) {
		ctx.AddIssue(&zog.ZogIssue{
			Path:    path,
			Message: msg,
		})
		valid = false
	}

	if !slices.Contains(model.Timeframes, spec.Timeframe) {
		fail("timeframe", fmt.Sprintf("unsupported timeframe %q", spec.Timeframe))
	}
	switch spec.Bias {
	case model.BiasBullish, model.BiasBearish, model.BiasNeutral:
	default:
		fail("bias", fmt.Sprintf("unsupported bias %q", spec.Bias))
	}
	for i, lvl := range spec.Levels {
		switch lvl.Type {
		case model.LevelSupport, model.LevelResistance, model.LevelTrendline:
		default:
			fail(fmt.Sprintf("levels[%d].type", i), fmt.Sprintf("unsupported level type %q", lvl.Type))
		}
	}
	for i, zone := range spec.Zones {
		if zone.Type != model.ZoneSupply && zone.Type != model.ZoneDemand {
			fail(fmt.Sprintf("zones[%d].type", i), fmt.Sprintf("unsupported zone type %q", zone.Type))
		}
		if zone.Top < zone.Bottom {
			fail(fmt.Sprintf("zones[%d]", i), "zone top must not be below bottom")
		}
	}
	return valid
}

// FillDefaults replaces nil slices with empty ones so decoded upstream specs
// compare and serialize the same way heuristic specs do.
func FillDefaults(spec *model.PlaySpec) {
	if spec.Indicators == nil {
		spec.Indicators = []string{}
	}
	if spec.Levels == nil {
		spec.Levels = []model.Level{}
	}
	if spec.Zones == nil {
		spec.Zones = []model.Zone{}
	}
	if spec.Entries == nil {
		spec.Entries = []model.PricePoint{}
	}
	if spec.Stops == nil {
		spec.Stops = []model.PricePoint{}
	}
	if spec.Targets == nil {
		spec.Targets = []model.PricePoint{}
	}
}

// ValidatePlaySpec returns nil when spec matches the play spec schema, or a
// *ValidationError listing every issue.
func ValidatePlaySpec(spec *model.PlaySpec) error {
	if spec == nil {
		return &ValidationError{Issues: []string{"play spec is missing"}}
	}
	if issues := playSpecSchema.Validate(spec); issues != nil {
		return newValidationError(issues)
	}
	return nil
}

// ValidationError carries the flattened zog issues.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Issues, "; ")
}

func newValidationError(issues map[string][]*zog.ZogIssue) *ValidationError {
	keys := make([]string, 0, len(issues))
	for k := range issues {
		// zog mirrors the first issue under "$first"
		if strings.HasPrefix(k, "$") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, issue := range issues[k] {
			out = append(out, k+": "+issue.Message)
		}
	}
	if len(out) == 0 {
		out = append(out, "validation failed")
	}
	return &ValidationError{Issues: out}
}
