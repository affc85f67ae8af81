package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalWorkouts  int64      `json:"total_workouts"`
	TotalExercises int64      `json:"total_exercises"`
	TotalSets      int64      `json:"total_sets"`
	EarliestData   *time.Time `json:"earliest_data"`
	LatestData     *time.Time `json:"latest_data"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT w.id),
		       COUNT(DISTINCT e.id),
		       COUNT(s.id),
		       MIN(w.date),
		       MAX(w.date)
		FROM workouts w
		LEFT JOIN exercises e ON e.workout_id = w.id
		LEFT JOIN sets s ON s.exercise_id = e.id
		WHERE w.user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts, &stats.TotalExercises, &stats.TotalSets,
		&stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("querying data stats: %w", err)
	}

	return stats, nil
}
