package models

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseType distinguishes lifting from cardio work.
type ExerciseType string

const (
	ExerciseStrength ExerciseType = "strength"
	ExerciseCardio   ExerciseType = "cardio"
)

// SetIntensity is the subjective pace marker carried by cardio sets.
type SetIntensity string

const (
	IntensitySlow SetIntensity = "slow"
	IntensityFast SetIntensity = "fast"
)

// SetTiming marks whether a cardio set happened before or after the
// strength portion of a workout. Missing values default to "after".
type SetTiming string

const (
	TimingBefore SetTiming = "before"
	TimingAfter  SetTiming = "after"
)

// SetEntry is a single logged set. Numeric fields left unset are zero
// and contribute zero to all aggregates; no field is required.
type SetEntry struct {
	WeightKg    float64      `json:"weight_kg,omitempty"`
	Reps        int          `json:"reps,omitempty"`
	Difficulty  float64      `json:"difficulty,omitempty"` // RPE, 0-10
	DurationSec float64      `json:"duration_sec,omitempty"`
	Intensity   SetIntensity `json:"intensity,omitempty"`
	Timing      SetTiming    `json:"timing,omitempty"`
}

// Volume is weight times reps for this set.
func (s SetEntry) Volume() float64 {
	return s.WeightKg * float64(s.Reps)
}

// EffectiveTiming returns the set's timing, defaulting to "after".
func (s SetEntry) EffectiveTiming() SetTiming {
	if s.Timing == TimingBefore {
		return TimingBefore
	}
	return TimingAfter
}

// Exercise is one exercise within a workout, with its ordered sets.
// MuscleGroup is an optional explicit tag; when empty, consumers that
// need a group run the name classifier instead.
type Exercise struct {
	Name        string       `json:"name"`
	Type        ExerciseType `json:"type"`
	MuscleGroup string       `json:"muscle_group,omitempty"`
	Sets        []SetEntry   `json:"sets"`
}

// Workout is a single logged training session. Workouts are immutable
// inputs to the analytics engine; aggregators never modify them.
type Workout struct {
	ID              uuid.UUID  `json:"id"`
	UserID          int        `json:"-"`
	Date            time.Time  `json:"date"`
	DurationMinutes float64    `json:"duration_minutes,omitempty"`
	Exercises       []Exercise `json:"exercises"`
}
