package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/meltforce/liftsight/internal/models"
)

// June 2025: the 16th is a Monday, the 22nd a Sunday.
var (
	splitMonday = time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC)
	splitSunday = time.Date(2025, 6, 22, 10, 0, 0, 0, time.UTC)
)

func testSplit() *models.SplitConfig {
	return &models.SplitConfig{
		Type: models.SplitCustom,
		CustomSplit: &models.CustomSplit{
			Name: "My Split",
			Schedule: map[int]models.SplitDay{
				1: {Name: "Push", Muscles: []string{"chest", "shoulders", "triceps"}},
				2: {Name: "Pull", Muscles: []string{"back", "biceps"}},
				7: {Name: "Rest"},
			},
		},
	}
}

func TestAggregateSplitNoConfig(t *testing.T) {
	res := AggregateSplit([]models.Workout{benchWorkout(splitMonday)}, nil)

	group, ok := res.Groups["Monday"]
	if !ok {
		t.Fatalf("no Monday group; groups = %v", res.Groups)
	}
	if group.SplitType != SplitTypeGeneral {
		t.Errorf("SplitType = %q, want %q", group.SplitType, SplitTypeGeneral)
	}
	if len(group.PlannedMuscles) != 0 {
		t.Errorf("weekday grouping should carry no planned muscles, got %v", group.PlannedMuscles)
	}
}

func TestAggregateSplitLabelsAndMuscles(t *testing.T) {
	res := AggregateSplit([]models.Workout{benchWorkout(splitMonday)}, testSplit())

	group, ok := res.Groups["Monday (Push)"]
	if !ok {
		t.Fatalf("no \"Monday (Push)\" group; groups = %v", res.Groups)
	}
	if group.SplitType != "My Split" {
		t.Errorf("SplitType = %q, want \"My Split\"", group.SplitType)
	}
	if len(group.PlannedMuscles) != 3 {
		t.Errorf("PlannedMuscles = %v", group.PlannedMuscles)
	}
}

// TestAggregateSplitSkipsRestAndUnplannedDays verifies workouts on
// rest days or unscheduled weekdays contribute to no group at all.
func TestAggregateSplitSkipsRestAndUnplannedDays(t *testing.T) {
	wednesday := time.Date(2025, 6, 18, 18, 0, 0, 0, time.UTC) // no schedule entry
	workouts := []models.Workout{
		benchWorkout(splitMonday), // Push day: included
		benchWorkout(splitSunday), // Rest day: skipped
		benchWorkout(wednesday),   // unplanned: skipped
	}

	res := AggregateSplit(workouts, testSplit())

	var sessions int
	for _, g := range res.Groups {
		sessions += len(g.Sessions)
	}
	if sessions != 1 {
		t.Errorf("split sessions = %d, want 1 (rest/unplanned workouts must be dropped)", sessions)
	}
	if sessions >= len(workouts) {
		t.Errorf("session count %d should be strictly less than workout count %d", sessions, len(workouts))
	}
}

func TestAggregateSplitSundayIsWeekdaySeven(t *testing.T) {
	cfg := &models.SplitConfig{
		Type: models.SplitCustom,
		CustomSplit: &models.CustomSplit{
			Name: "Weekend",
			Schedule: map[int]models.SplitDay{
				7: {Name: "Arms", Muscles: []string{"biceps", "triceps"}},
			},
		},
	}

	res := AggregateSplit([]models.Workout{benchWorkout(splitSunday)}, cfg)
	if _, ok := res.Groups["Sunday (Arms)"]; !ok {
		t.Fatalf("Sunday workout did not land in weekday 7; groups = %v", res.Groups)
	}
}

func TestAggregateSplitPerSessionAverages(t *testing.T) {
	second := benchWorkout(splitMonday.AddDate(0, 0, 7))
	second.Exercises[0].Sets = append(second.Exercises[0].Sets,
		models.SetEntry{WeightKg: 110, Reps: 3})

	res := AggregateSplit([]models.Workout{benchWorkout(splitMonday), second}, testSplit())
	group := res.Groups["Monday (Push)"]

	// Sessions: 1000 volume and 1330 volume.
	if got, want := group.AvgVolume, 1165.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("AvgVolume = %v, want %v", got, want)
	}
	if got, want := group.AvgSets, 2.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("AvgSets = %v, want %v", got, want)
	}
	// MaxWeight stays a running max, not an average.
	if group.MaxWeight != 110 {
		t.Errorf("MaxWeight = %v, want 110", group.MaxWeight)
	}
}

// TestSplitRankedOrder verifies comparison ordering: groups sorted by
// their most recent session date, oldest first.
func TestSplitRankedOrder(t *testing.T) {
	tuesday := time.Date(2025, 6, 17, 18, 0, 0, 0, time.UTC)
	workouts := []models.Workout{
		benchWorkout(splitMonday.AddDate(0, 0, 14)), // Monday group, most recent Jun 30
		benchWorkout(tuesday),                       // Tuesday group, most recent Jun 17
	}

	ranked := AggregateSplit(workouts, testSplit()).Ranked()
	if len(ranked) != 2 {
		t.Fatalf("ranked %d groups, want 2", len(ranked))
	}
	if ranked[0].Label != "Tuesday (Pull)" || ranked[1].Label != "Monday (Push)" {
		t.Errorf("ranked order = [%s, %s], want oldest-most-recent first",
			ranked[0].Label, ranked[1].Label)
	}
}

func TestSplitConfigResolveDegradesToNone(t *testing.T) {
	tests := []struct {
		name string
		cfg  *models.SplitConfig
	}{
		{"nil config", nil},
		{"type none", &models.SplitConfig{Type: models.SplitNone}},
		{"empty type", &models.SplitConfig{}},
		{"unknown preset", &models.SplitConfig{Type: "does-not-exist"}},
		{"custom without schedule", &models.SplitConfig{Type: models.SplitCustom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := tt.cfg.Resolve(); ok {
				t.Error("Resolve() ok = true, want degradation to no split")
			}
			// The aggregator must fall back to weekday grouping.
			res := AggregateSplit([]models.Workout{benchWorkout(splitMonday)}, tt.cfg)
			if _, found := res.Groups["Monday"]; !found {
				t.Errorf("expected weekday fallback group, got %v", res.Groups)
			}
		})
	}
}
