package models

// SplitDay is the planned focus for one weekday of a split schedule.
// A day named "Rest" or with no muscles is a rest day.
type SplitDay struct {
	Name    string   `json:"name"`
	Muscles []string `json:"muscles"`
}

// CustomSplit is a user-defined weekly schedule. Schedule keys are
// ISO weekday numbers (1=Monday .. 7=Sunday).
type CustomSplit struct {
	Name     string           `json:"name"`
	Schedule map[int]SplitDay `json:"schedule"`
}

// SplitConfig is the stored split configuration. Type is "none",
// "custom", or a preset id. Anything unrecognized degrades to no split.
type SplitConfig struct {
	Type        string       `json:"type"`
	CustomSplit *CustomSplit `json:"custom_split,omitempty"`
}

const (
	SplitNone   = "none"
	SplitCustom = "custom"
)

// presetSplits are the built-in weekly schedules selectable by id.
var presetSplits = map[string]CustomSplit{
	"ppl": {
		Name: "Push Pull Legs",
		Schedule: map[int]SplitDay{
			1: {Name: "Push", Muscles: []string{"chest", "shoulders", "triceps"}},
			2: {Name: "Pull", Muscles: []string{"back", "biceps", "forearms"}},
			3: {Name: "Legs", Muscles: []string{"legs"}},
			4: {Name: "Push", Muscles: []string{"chest", "shoulders", "triceps"}},
			5: {Name: "Pull", Muscles: []string{"back", "biceps", "forearms"}},
			6: {Name: "Legs", Muscles: []string{"legs"}},
			7: {Name: "Rest"},
		},
	},
	"upper_lower": {
		Name: "Upper Lower",
		Schedule: map[int]SplitDay{
			1: {Name: "Upper", Muscles: []string{"chest", "back", "shoulders", "biceps", "triceps"}},
			2: {Name: "Lower", Muscles: []string{"legs"}},
			3: {Name: "Rest"},
			4: {Name: "Upper", Muscles: []string{"chest", "back", "shoulders", "biceps", "triceps"}},
			5: {Name: "Lower", Muscles: []string{"legs"}},
			6: {Name: "Rest"},
			7: {Name: "Rest"},
		},
	},
	"full_body": {
		Name: "Full Body",
		Schedule: map[int]SplitDay{
			1: {Name: "Full Body", Muscles: []string{"chest", "back", "legs", "shoulders"}},
			2: {Name: "Rest"},
			3: {Name: "Full Body", Muscles: []string{"chest", "back", "legs", "shoulders"}},
			4: {Name: "Rest"},
			5: {Name: "Full Body", Muscles: []string{"chest", "back", "legs", "shoulders"}},
			6: {Name: "Rest"},
			7: {Name: "Rest"},
		},
	},
}

// Resolve returns the split name and weekday schedule for this config.
// ok is false when no usable split is configured: type "none", an empty
// or unknown type, a custom split without a schedule, or a nil receiver.
func (c *SplitConfig) Resolve() (name string, schedule map[int]SplitDay, ok bool) {
	if c == nil || c.Type == "" || c.Type == SplitNone {
		return "", nil, false
	}
	if c.Type == SplitCustom {
		if c.CustomSplit == nil || len(c.CustomSplit.Schedule) == 0 {
			return "", nil, false
		}
		return c.CustomSplit.Name, c.CustomSplit.Schedule, true
	}
	preset, found := presetSplits[c.Type]
	if !found {
		return "", nil, false
	}
	return preset.Name, preset.Schedule, true
}
