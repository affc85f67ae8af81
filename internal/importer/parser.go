package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftsight/internal/models"
)

const lbToKg = 0.45359237

// exportFile is the workout-log JSON export format.
type exportFile struct {
	Workouts []exportWorkout `json:"workouts"`
}

type exportWorkout struct {
	ID              string           `json:"id"`
	Date            string           `json:"date"`
	DurationMinutes float64          `json:"duration_minutes"`
	Exercises       []exportExercise `json:"exercises"`
}

type exportExercise struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	MuscleGroup string      `json:"muscle_group"`
	Sets        []exportSet `json:"sets"`
}

type exportSet struct {
	Weight      float64 `json:"weight"`
	WeightUnit  string  `json:"weight_unit"`
	Reps        int     `json:"reps"`
	Difficulty  float64 `json:"difficulty"`
	DurationSec float64 `json:"duration_sec"`
	Intensity   string  `json:"intensity"`
	Timing      string  `json:"timing"`
}

// ParseFile reads a workout-log export file and converts it to model
// workouts. Entries without an ID get a deterministic one derived from
// their content, so re-importing the same file never duplicates rows.
func ParseFile(path string) ([]models.Workout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}

	var file exportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	workouts := make([]models.Workout, 0, len(file.Workouts))
	for i, ew := range file.Workouts {
		w, err := convertWorkout(ew)
		if err != nil {
			return nil, fmt.Errorf("%s workout %d: %w", path, i, err)
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

func convertWorkout(ew exportWorkout) (models.Workout, error) {
	date, err := parseExportDate(ew.Date)
	if err != nil {
		return models.Workout{}, err
	}

	w := models.Workout{
		Date:            date,
		DurationMinutes: ew.DurationMinutes,
	}

	for _, ex := range ew.Exercises {
		w.Exercises = append(w.Exercises, convertExercise(ex))
	}

	if ew.ID != "" {
		id, err := uuid.Parse(ew.ID)
		if err != nil {
			return models.Workout{}, fmt.Errorf("invalid workout id %q: %w", ew.ID, err)
		}
		w.ID = id
	} else {
		w.ID = deterministicID(ew)
	}
	return w, nil
}

func convertExercise(ex exportExercise) models.Exercise {
	out := models.Exercise{
		Name:        ex.Name,
		Type:        models.ExerciseType(ex.Type),
		MuscleGroup: ex.MuscleGroup,
	}
	if out.Type == "" {
		out.Type = models.ExerciseStrength
	}

	for _, s := range ex.Sets {
		weight := s.Weight
		if strings.EqualFold(s.WeightUnit, "lb") || strings.EqualFold(s.WeightUnit, "lbs") {
			weight *= lbToKg
		}
		out.Sets = append(out.Sets, models.SetEntry{
			WeightKg:    weight,
			Reps:        s.Reps,
			Difficulty:  s.Difficulty,
			DurationSec: s.DurationSec,
			Intensity:   models.SetIntensity(s.Intensity),
			Timing:      models.SetTiming(s.Timing),
		})
	}
	return out
}

// exportDateFormats are tried in order; exports from older app versions
// carry date-only or space-separated stamps.
var exportDateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseExportDate(s string) (time.Time, error) {
	for _, layout := range exportDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// deterministicID hashes the workout content into a stable UUID.
func deterministicID(ew exportWorkout) uuid.UUID {
	var b strings.Builder
	b.WriteString(ew.Date)
	for _, ex := range ew.Exercises {
		b.WriteString("|")
		b.WriteString(ex.Name)
		fmt.Fprintf(&b, ":%d", len(ex.Sets))
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(b.String()))
}
