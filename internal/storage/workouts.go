package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftsight/internal/models"
)

// InsertWorkouts stores workouts with their exercises and sets in one
// transaction. Returns the number of workouts inserted; workouts whose
// ID already exists are skipped.
func (db *DB) InsertWorkouts(ctx context.Context, workouts []models.Workout) (int64, error) {
	if len(workouts) == 0 {
		return 0, nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var inserted int64
	for _, w := range workouts {
		if w.ID == uuid.Nil {
			w.ID = uuid.New()
		}
		tag, err := tx.Exec(ctx,
			`INSERT INTO workouts (id, user_id, date, duration_minutes)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO NOTHING`,
			w.ID, w.UserID, w.Date, w.DurationMinutes)
		if err != nil {
			return 0, fmt.Errorf("inserting workout: %w", err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}
		inserted++

		for exPos, ex := range w.Exercises {
			var exerciseID int64
			err := tx.QueryRow(ctx,
				`INSERT INTO exercises (workout_id, position, name, type, muscle_group)
				 VALUES ($1, $2, $3, $4, $5)
				 RETURNING id`,
				w.ID, exPos, ex.Name, ex.Type, ex.MuscleGroup).Scan(&exerciseID)
			if err != nil {
				return 0, fmt.Errorf("inserting exercise: %w", err)
			}

			for setPos, s := range ex.Sets {
				_, err := tx.Exec(ctx,
					`INSERT INTO sets (exercise_id, position, weight_kg, reps,
					 difficulty, duration_sec, intensity, timing)
					 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
					exerciseID, setPos, s.WeightKg, s.Reps,
					s.Difficulty, s.DurationSec, string(s.Intensity), string(s.Timing))
				if err != nil {
					return 0, fmt.Errorf("inserting set: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing workouts: %w", err)
	}
	return inserted, nil
}

// QueryWorkouts retrieves workouts in [start, end) for a user, with
// exercises and sets in their logged order.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, date, duration_minutes
		 FROM workouts
		 WHERE date >= $1 AND date < $2 AND user_id = $3
		 ORDER BY date ASC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var workouts []models.Workout
	index := make(map[uuid.UUID]int)
	var ids []uuid.UUID
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		index[w.ID] = len(workouts)
		ids = append(ids, w.ID)
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return []models.Workout{}, nil
	}

	if err := db.attachExercises(ctx, workouts, index, ids); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetWorkout retrieves a single workout with its exercises and sets.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.Workout, error) {
	var w models.Workout
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, date, duration_minutes
		 FROM workouts WHERE id = $1 AND user_id = $2`,
		id, userID).Scan(&w.ID, &w.UserID, &w.Date, &w.DurationMinutes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("workout %s: not found", id)
		}
		return nil, fmt.Errorf("querying workout: %w", err)
	}

	workouts := []models.Workout{w}
	index := map[uuid.UUID]int{w.ID: 0}
	if err := db.attachExercises(ctx, workouts, index, []uuid.UUID{w.ID}); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

type exerciseLoc struct {
	workout  int
	exercise int
}

// attachExercises loads exercises and sets for the given workouts and
// appends them in position order.
func (db *DB) attachExercises(ctx context.Context, workouts []models.Workout, index map[uuid.UUID]int, ids []uuid.UUID) error {
	exRows, err := db.Pool.Query(ctx,
		`SELECT id, workout_id, name, type, COALESCE(muscle_group, '')
		 FROM exercises
		 WHERE workout_id = ANY($1)
		 ORDER BY workout_id, position ASC`,
		ids)
	if err != nil {
		return fmt.Errorf("querying exercises: %w", err)
	}
	defer exRows.Close()

	exIndex := make(map[int64]exerciseLoc)
	var exIDs []int64
	for exRows.Next() {
		var exID int64
		var workoutID uuid.UUID
		var ex models.Exercise
		if err := exRows.Scan(&exID, &workoutID, &ex.Name, &ex.Type, &ex.MuscleGroup); err != nil {
			return fmt.Errorf("scanning exercise: %w", err)
		}
		wi := index[workoutID]
		workouts[wi].Exercises = append(workouts[wi].Exercises, ex)
		exIndex[exID] = exerciseLoc{wi, len(workouts[wi].Exercises) - 1}
		exIDs = append(exIDs, exID)
	}
	if err := exRows.Err(); err != nil {
		return err
	}
	if len(exIDs) == 0 {
		return nil
	}

	setRows, err := db.Pool.Query(ctx,
		`SELECT exercise_id, weight_kg, reps, difficulty, duration_sec,
		 COALESCE(intensity, ''), COALESCE(timing, '')
		 FROM sets
		 WHERE exercise_id = ANY($1)
		 ORDER BY exercise_id, position ASC`,
		exIDs)
	if err != nil {
		return fmt.Errorf("querying sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var exID int64
		var s models.SetEntry
		if err := setRows.Scan(&exID, &s.WeightKg, &s.Reps, &s.Difficulty,
			&s.DurationSec, &s.Intensity, &s.Timing); err != nil {
			return fmt.Errorf("scanning set: %w", err)
		}
		loc := exIndex[exID]
		ex := &workouts[loc.workout].Exercises[loc.exercise]
		ex.Sets = append(ex.Sets, s)
	}
	return setRows.Err()
}
