package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/meltforce/liftsight/internal/models"
)

// sessionKeyFormat is the calendar-day grouping key for sessions.
// Grouping by the formatted string means two workouts sharing a
// month/day label merge into one session even across years. That
// matches the display timeline this feeds; callers that need
// year-exact sessions must pre-filter to a single year's range.
const sessionKeyFormat = "Jan 2"

// SessionExercise is one exercise's contribution to a session.
type SessionExercise struct {
	Name      string  `json:"name"`
	Sets      int     `json:"sets"`
	Volume    float64 `json:"volume"`
	MaxWeight float64 `json:"max_weight_kg"`
}

// SessionStat is one muscle group's activity on one calendar day.
type SessionStat struct {
	Date              time.Time         `json:"date"`
	Label             string            `json:"label"`
	Volume            float64           `json:"volume"`
	Sets              int               `json:"sets"`
	Reps              int               `json:"reps"`
	MaxWeight         float64           `json:"max_weight_kg"`
	AvgWeight         float64           `json:"avg_weight_kg"`
	Exercises         []SessionExercise `json:"exercises"`
	MaxWeightExercise string            `json:"max_weight_exercise,omitempty"`
	MaxWeightSet      models.SetEntry   `json:"max_weight_set"`

	weightSum   float64
	weightCount int
}

// MuscleGroupStat is the derived per-group aggregate. Totals are
// always the sum of the group's sessions; the whole structure is
// rebuilt on every aggregation call.
type MuscleGroupStat struct {
	Sessions    []*SessionStat `json:"sessions"`
	TotalVolume float64        `json:"total_volume"`
	TotalSets   int            `json:"total_sets"`
	TotalReps   int            `json:"total_reps"`
	MaxWeight   float64        `json:"max_weight_kg"`
	AvgWeight   float64        `json:"avg_weight_kg"`
}

// AggregateMuscleGroups builds per-muscle-group session timelines from
// the given workouts. Every exercise is classified by name; sessions
// are keyed by (group, formatted calendar day) and sorted
// chronologically. The input is never modified.
func AggregateMuscleGroups(workouts []models.Workout) map[string]*MuscleGroupStat {
	stats := make(map[string]*MuscleGroupStat)
	sessions := make(map[string]map[string]*SessionStat) // group -> day key -> session

	for _, w := range workouts {
		dayKey := w.Date.Format(sessionKeyFormat)
		for _, ex := range w.Exercises {
			group := Classify(ex.Name)

			stat, ok := stats[group]
			if !ok {
				stat = &MuscleGroupStat{}
				stats[group] = stat
				sessions[group] = make(map[string]*SessionStat)
			}

			sess, ok := sessions[group][dayKey]
			if !ok {
				sess = &SessionStat{Date: w.Date, Label: dayKey}
				sessions[group][dayKey] = sess
				stat.Sessions = append(stat.Sessions, sess)
			}

			se := SessionExercise{Name: ex.Name, Sets: len(ex.Sets)}
			for _, s := range ex.Sets {
				vol := s.Volume()
				se.Volume += vol
				if s.WeightKg > se.MaxWeight {
					se.MaxWeight = s.WeightKg
				}

				sess.Volume += vol
				sess.Sets++
				sess.Reps += s.Reps
				if s.WeightKg > sess.MaxWeight {
					sess.MaxWeight = s.WeightKg
					sess.MaxWeightExercise = ex.Name
					sess.MaxWeightSet = s
				}
				if s.WeightKg > 0 {
					sess.weightSum += s.WeightKg
					sess.weightCount++
				}

				stat.TotalVolume += vol
				stat.TotalSets++
				stat.TotalReps += s.Reps
				if s.WeightKg > stat.MaxWeight {
					stat.MaxWeight = s.WeightKg
				}
			}
			sess.Exercises = append(sess.Exercises, se)
		}
	}

	for _, stat := range stats {
		sort.SliceStable(stat.Sessions, func(i, j int) bool {
			return stat.Sessions[i].Date.Before(stat.Sessions[j].Date)
		})
		var weightSum float64
		var weightCount int
		for _, sess := range stat.Sessions {
			if sess.weightCount > 0 {
				sess.AvgWeight = sess.weightSum / float64(sess.weightCount)
			}
			weightSum += sess.weightSum
			weightCount += sess.weightCount
		}
		if weightCount > 0 {
			stat.AvgWeight = weightSum / float64(weightCount)
		}
	}

	return stats
}

// RankedGroup pairs a group name with its aggregate for display.
type RankedGroup struct {
	Name string `json:"name"`
	*MuscleGroupStat
}

// RankMuscleGroups orders groups by total volume descending, dropping
// groups with zero volume. Equal volumes tie-break on name so the
// ordering is deterministic.
func RankMuscleGroups(stats map[string]*MuscleGroupStat) []RankedGroup {
	ranked := make([]RankedGroup, 0, len(stats))
	for name, stat := range stats {
		if stat.TotalVolume == 0 {
			continue
		}
		ranked = append(ranked, RankedGroup{Name: name, MuscleGroupStat: stat})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalVolume != ranked[j].TotalVolume {
			return ranked[i].TotalVolume > ranked[j].TotalVolume
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// VolumeByGroup totals volume per muscle group, trusting an exercise's
// explicit MuscleGroup tag when present and classifying by name only
// when the tag is absent. This is the breakdown path used by the
// summary view; the session timeline above always classifies.
func VolumeByGroup(workouts []models.Workout) map[string]float64 {
	out := make(map[string]float64)
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			group := strings.ToLower(strings.TrimSpace(ex.MuscleGroup))
			if group == "" {
				group = Classify(ex.Name)
			}
			for _, s := range ex.Sets {
				out[group] += s.Volume()
			}
		}
	}
	return out
}
