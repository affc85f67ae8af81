package analytics

import "github.com/meltforce/liftsight/internal/models"

// Metrics holds the volume, set, rep, and intensity totals for a set
// of exercises. Every field is zero when the input is empty; no
// computation here can produce NaN.
type Metrics struct {
	TotalVolume  float64 `json:"total_volume"`
	TotalSets    int     `json:"total_sets"`
	TotalReps    int     `json:"total_reps"`
	MaxWeight    float64 `json:"max_weight_kg"`
	AvgIntensity float64 `json:"avg_intensity"`
}

// AggregateExercises reduces a list of exercises to totals.
//
// AvgIntensity is a two-level average: difficulty is first averaged
// within each strength exercise, then those per-exercise averages are
// averaged across exercises. Cardio exercises are excluded from
// intensity but their populated weight/rep fields still count toward
// the volume totals. Strength exercises without sets contribute
// nothing to either level.
func AggregateExercises(exercises []models.Exercise) Metrics {
	var m Metrics
	var intensitySum float64
	var intensityCount int

	for _, ex := range exercises {
		for _, s := range ex.Sets {
			m.TotalVolume += s.Volume()
			m.TotalSets++
			m.TotalReps += s.Reps
			if s.WeightKg > m.MaxWeight {
				m.MaxWeight = s.WeightKg
			}
		}

		if ex.Type != models.ExerciseStrength || len(ex.Sets) == 0 {
			continue
		}
		var diffSum float64
		for _, s := range ex.Sets {
			diffSum += s.Difficulty
		}
		intensitySum += diffSum / float64(len(ex.Sets))
		intensityCount++
	}

	if intensityCount > 0 {
		m.AvgIntensity = intensitySum / float64(intensityCount)
	}
	return m
}

// AggregateWorkout reduces a single workout to totals.
func AggregateWorkout(w models.Workout) Metrics {
	return AggregateExercises(w.Exercises)
}

// AggregateWorkouts reduces a list of workouts to combined totals.
// Intensity is averaged across all strength exercises in all workouts,
// not per workout.
func AggregateWorkouts(workouts []models.Workout) Metrics {
	var all []models.Exercise
	for _, w := range workouts {
		all = append(all, w.Exercises...)
	}
	return AggregateExercises(all)
}

// avgDifficulty is a flat average over sets that carry a difficulty
// rating, regardless of exercise type. Used by the split aggregator.
func avgDifficulty(w models.Workout) float64 {
	var sum float64
	var count int
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			if s.Difficulty > 0 {
				sum += s.Difficulty
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
