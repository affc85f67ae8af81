package analytics

import "strings"

// GroupOther is the sentinel group for exercises no rule can place.
const GroupOther = "other"

// MuscleGroups lists every canonical group the classifier can emit,
// in classification order. Group keys are always lower-case.
var MuscleGroups = []string{
	"chest", "back", "legs", "shoulders", "biceps", "triceps", "forearms", "abs",
}

type groupEntry struct {
	group string
	terms []string
}

// exerciseDictionary maps canonical groups to known exercise names.
// Checked before the keyword table; order matters because matching is
// by substring in either direction and the first hit wins.
var exerciseDictionary = []groupEntry{
	{"chest", []string{
		"bench press", "incline bench press", "decline bench press",
		"chest fly", "cable crossover", "push up", "pushup", "chest press",
		"pec deck",
	}},
	{"back", []string{
		"barbell row", "dumbbell row", "seated cable row", "t-bar row",
		"pull up", "pullup", "lat pulldown", "face pull",
		"back extension", "good morning",
	}},
	{"legs", []string{
		"squat", "leg press", "lunge", "leg extension", "leg curl",
		"calf raise", "romanian deadlift", "hip thrust",
		"bulgarian split squat", "step up",
	}},
	{"shoulders", []string{
		"overhead press", "shoulder press", "military press", "arnold press",
		"lateral raise", "front raise", "rear delt fly", "upright row", "shrug",
	}},
	{"biceps", []string{
		"bicep curl", "barbell curl", "hammer curl", "preacher curl",
		"concentration curl", "chin up", "chinup",
	}},
	{"triceps", []string{
		"tricep extension", "tricep pushdown", "skull crusher",
		"close grip bench press", "overhead tricep extension", "dip",
	}},
	{"forearms", []string{
		"wrist curl", "reverse curl", "farmer's walk", "farmers walk",
		"dead hang",
	}},
	{"abs", []string{
		"crunch", "plank", "sit up", "situp", "leg raise", "russian twist",
		"ab wheel", "hanging knee raise",
	}},
}

// keywordTable is the fallback for names the dictionary misses. For
// each group, a list of stemmed keywords; the first group with a
// keyword contained in the input wins. The iteration order is part of
// the contract: "press" alone matches chest because chest is checked
// before shoulders.
var keywordTable = []groupEntry{
	{"chest", []string{"chest", "bench", "press", "fly", "dip"}},
	{"back", []string{"back", "row", "pull", "deadlift", "lat", "chin"}},
	{"legs", []string{"leg", "squat", "lunge", "calf", "quad", "hamstring", "glute", "hip"}},
	{"shoulders", []string{"shoulder", "delt", "raise", "shrug", "overhead", "military"}},
	{"biceps", []string{"bicep", "curl"}},
	{"triceps", []string{"tricep", "skull", "pushdown", "extension"}},
	{"forearms", []string{"forearm", "wrist", "grip"}},
	{"abs", []string{"abs", "crunch", "plank", "twist", "situp", "sit-up"}},
}

// Classify maps a free-text exercise name to a canonical muscle group.
// It is total: any string, including the empty string, yields a group,
// falling back to "other" when nothing matches.
//
// Matching order: first the exercise dictionary, where the lower-cased
// input matches a known name exactly or as a substring in either
// direction; then the keyword table, where the first group with a
// keyword contained in the input wins.
func Classify(exerciseName string) string {
	name := strings.ToLower(strings.TrimSpace(exerciseName))
	if name == "" {
		return GroupOther
	}

	for _, entry := range exerciseDictionary {
		for _, known := range entry.terms {
			if name == known || strings.Contains(name, known) || strings.Contains(known, name) {
				return entry.group
			}
		}
	}

	for _, entry := range keywordTable {
		for _, kw := range entry.terms {
			if strings.Contains(name, kw) {
				return entry.group
			}
		}
	}

	return GroupOther
}
