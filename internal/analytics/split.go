package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftsight/internal/models"
)

// SplitTypeGeneral labels the weekday-only grouping used when no
// split is configured.
const SplitTypeGeneral = "General"

// SplitSession is one workout's metrics inside a split group.
// AvgIntensity here is a flat average over sets carrying a difficulty
// rating, regardless of exercise type.
type SplitSession struct {
	WorkoutID    uuid.UUID `json:"workout_id"`
	Date         time.Time `json:"date"`
	Volume       float64   `json:"volume"`
	Sets         int       `json:"sets"`
	Reps         int       `json:"reps"`
	MaxWeight    float64   `json:"max_weight_kg"`
	AvgIntensity float64   `json:"avg_intensity"`
}

// SplitGroup aggregates the workouts falling on one planned day.
// The Avg* fields are per-session display values; MaxWeight stays the
// running max.
type SplitGroup struct {
	Label          string         `json:"label"`
	SplitType      string         `json:"split_type"`
	PlannedMuscles []string       `json:"planned_muscles,omitempty"`
	Sessions       []SplitSession `json:"sessions"`
	TotalVolume    float64        `json:"total_volume"`
	TotalSets      int            `json:"total_sets"`
	TotalReps      int            `json:"total_reps"`
	MaxWeight      float64        `json:"max_weight_kg"`
	AvgVolume      float64        `json:"avg_volume"`
	AvgSets        float64        `json:"avg_sets"`
	AvgReps        float64        `json:"avg_reps"`
}

// SplitResult holds split groups keyed by label plus their first-seen
// order, which Ranked uses for tie-breaking.
type SplitResult struct {
	Groups map[string]*SplitGroup `json:"groups"`

	order []string
}

// AggregateSplit groups workouts by planned split day, or by weekday
// when no split is configured.
//
// With a split configured, a workout whose weekday has no planned
// entry, is named "Rest", or has an empty muscle list is skipped
// entirely: it contributes to no group.
func AggregateSplit(workouts []models.Workout, cfg *models.SplitConfig) *SplitResult {
	res := &SplitResult{Groups: make(map[string]*SplitGroup)}

	splitName, schedule, haveSplit := cfg.Resolve()

	for _, w := range workouts {
		weekday := w.Date.Weekday().String()

		var label, splitType string
		var planned []string
		if haveSplit {
			entry, ok := schedule[isoWeekday(w.Date)]
			if !ok || strings.EqualFold(entry.Name, "Rest") || len(entry.Muscles) == 0 {
				continue
			}
			label = fmt.Sprintf("%s (%s)", weekday, entry.Name)
			splitType = splitName
			planned = entry.Muscles
		} else {
			label = weekday
			splitType = SplitTypeGeneral
		}

		group, ok := res.Groups[label]
		if !ok {
			group = &SplitGroup{Label: label, SplitType: splitType, PlannedMuscles: planned}
			res.Groups[label] = group
			res.order = append(res.order, label)
		}

		m := AggregateWorkout(w)
		group.Sessions = append(group.Sessions, SplitSession{
			WorkoutID:    w.ID,
			Date:         w.Date,
			Volume:       m.TotalVolume,
			Sets:         m.TotalSets,
			Reps:         m.TotalReps,
			MaxWeight:    m.MaxWeight,
			AvgIntensity: avgDifficulty(w),
		})
		group.TotalVolume += m.TotalVolume
		group.TotalSets += m.TotalSets
		group.TotalReps += m.TotalReps
		if m.MaxWeight > group.MaxWeight {
			group.MaxWeight = m.MaxWeight
		}
	}

	for _, group := range res.Groups {
		n := float64(len(group.Sessions))
		if n > 0 {
			group.AvgVolume = group.TotalVolume / n
			group.AvgSets = float64(group.TotalSets) / n
			group.AvgReps = float64(group.TotalReps) / n
		}
	}

	return res
}

// Ranked orders groups by each group's most recent session date,
// oldest first. Groups with identical most-recent dates keep their
// first-seen order.
func (r *SplitResult) Ranked() []*SplitGroup {
	labels := make([]string, len(r.order))
	copy(labels, r.order)

	sort.SliceStable(labels, func(i, j int) bool {
		return mostRecentSession(r.Groups[labels[i]]).Before(mostRecentSession(r.Groups[labels[j]]))
	})

	out := make([]*SplitGroup, 0, len(labels))
	for _, label := range labels {
		out = append(out, r.Groups[label])
	}
	return out
}

func mostRecentSession(g *SplitGroup) time.Time {
	var latest time.Time
	for _, s := range g.Sessions {
		if s.Date.After(latest) {
			latest = s.Date
		}
	}
	return latest
}

// isoWeekday returns 1=Monday .. 7=Sunday.
func isoWeekday(t time.Time) int {
	d := int(t.Weekday())
	if d == 0 {
		return 7
	}
	return d
}
