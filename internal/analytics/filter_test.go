package analytics

import (
	"testing"
	"time"

	"github.com/meltforce/liftsight/internal/models"
)

func workoutOn(date time.Time) models.Workout {
	return models.Workout{Date: date}
}

func TestFilterByRangeLastNDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		days    int
		date    time.Time
		include bool
	}{
		{"exactly now, n=0", 0, now, true},
		{"exactly now, n=7", 7, now, true},
		{"one hour ago, n=0", 0, now.Add(-time.Hour), false},
		{"within window", 7, now.AddDate(0, 0, -3), true},
		{"on the cutoff", 7, now.AddDate(0, 0, -7), true},
		{"n+1 days ago", 7, now.AddDate(0, 0, -8), false},
		{"future dated", 0, now.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByRange([]models.Workout{workoutOn(tt.date)}, LastNDays(tt.days), now)
			if included := len(got) == 1; included != tt.include {
				t.Errorf("lastNDays(%d) with date %v: included=%v, want %v",
					tt.days, tt.date, included, tt.include)
			}
		})
	}
}

func TestFilterByRangeToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	workouts := []models.Workout{
		workoutOn(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),  // midnight today
		workoutOn(time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)), // late today
		workoutOn(time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)), // yesterday
		workoutOn(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)),  // tomorrow
	}

	got := FilterByRange(workouts, RangeSpec{Kind: RangeToday}, now)
	if len(got) != 2 {
		t.Fatalf("today filter kept %d workouts, want 2", len(got))
	}
}

func TestFilterByRangeSpecificDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	target := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	workouts := []models.Workout{
		workoutOn(time.Date(2025, 6, 10, 18, 30, 0, 0, time.UTC)),
		workoutOn(time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC)),
	}

	got := FilterByRange(workouts, RangeSpec{Kind: RangeSpecificDate, Date: target}, now)
	if len(got) != 1 {
		t.Fatalf("specificDate filter kept %d workouts, want 1", len(got))
	}
}

// TestFilterByRangeDoesNotMutate verifies the input slice keeps its
// contents and order.
func TestFilterByRangeDoesNotMutate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	workouts := []models.Workout{
		workoutOn(now.AddDate(0, 0, -10)),
		workoutOn(now),
		workoutOn(now.AddDate(0, 0, -1)),
	}
	dates := []time.Time{workouts[0].Date, workouts[1].Date, workouts[2].Date}

	FilterByRange(workouts, LastNDays(7), now)

	for i, w := range workouts {
		if !w.Date.Equal(dates[i]) {
			t.Fatalf("input slice mutated at index %d", i)
		}
	}
}

func TestRangeLabel(t *testing.T) {
	tests := []struct {
		spec RangeSpec
		want string
	}{
		{RangeSpec{Kind: RangeToday}, "Today"},
		{RangeSpec{Kind: RangeSpecificDate, Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)}, "Jun 10, 2025"},
		{LastNDays(7), "Last 7 days"},
		{LastNDays(1), "Last day"},
	}

	for _, tt := range tests {
		if got := tt.spec.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
