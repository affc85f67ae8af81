package mcp

import (
	"context"
	"time"

	"github.com/meltforce/liftsight/internal/models"
	"github.com/meltforce/liftsight/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface;
// the analytics themselves run in-process over the returned workouts.
type DataSource interface {
	QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.Workout, error)
	GetSplitConfig(ctx context.Context, userID int) (*models.SplitConfig, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
