package importer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/meltforce/liftsight/internal/models"
)

// Stats tracks import progress.
type Stats struct {
	FilesTotal   int
	FilesSent    int
	FilesSkipped int
	FilesErrored int
	WorkoutsSent int
}

// Importer walks a directory of workout-log JSON export files and
// sends new ones to the LiftSight server, batching workouts per POST.
type Importer struct {
	client    *Client
	state     *StateDB
	dir       string
	dryRun    bool
	batchSize int
	log       *slog.Logger
	stats     Stats
}

// New creates a new Importer.
func New(client *Client, state *StateDB, dir string, dryRun bool, batchSize int, log *slog.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = 25
	}
	return &Importer{
		client:    client,
		state:     state,
		dir:       dir,
		dryRun:    dryRun,
		batchSize: batchSize,
		log:       log,
	}
}

// fileInfo tracks a file's metadata for state DB operations.
type fileInfo struct {
	relPath string
	size    int64
	hash    string
}

// Run executes the import pipeline. Files that fail to parse are
// logged and skipped; a send failure aborts the run so the state DB
// never marks unsent data.
func (imp *Importer) Run() (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(imp.dir, "*.json"))
	if err != nil {
		return &imp.stats, fmt.Errorf("listing export files: %w", err)
	}

	var batch []models.Workout
	var batchFiles []fileInfo

	for _, f := range files {
		imp.stats.FilesTotal++

		relPath, _ := filepath.Rel(imp.dir, f)
		info, err := os.Stat(f)
		if err != nil {
			imp.log.Warn("stat failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		hash, err := HashFile(f)
		if err != nil {
			imp.log.Warn("hash failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		sent, err := imp.state.IsSent(relPath, info.Size(), hash)
		if err != nil {
			imp.log.Warn("state check failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}
		if sent {
			imp.stats.FilesSkipped++
			continue
		}

		workouts, err := ParseFile(f)
		if err != nil {
			imp.log.Warn("parse failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		if len(workouts) == 0 {
			imp.stats.FilesSkipped++
			// Mark empty files as sent so we don't re-check them
			if !imp.dryRun {
				_ = imp.state.MarkSent(relPath, info.Size(), hash)
			}
			continue
		}

		batch = append(batch, workouts...)
		batchFiles = append(batchFiles, fileInfo{relPath: relPath, size: info.Size(), hash: hash})

		if len(batch) >= imp.batchSize {
			if err := imp.sendBatch(batch, batchFiles); err != nil {
				return &imp.stats, err
			}
			batch = nil
			batchFiles = nil
		}
	}

	if len(batch) > 0 {
		if err := imp.sendBatch(batch, batchFiles); err != nil {
			return &imp.stats, err
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) sendBatch(workouts []models.Workout, files []fileInfo) error {
	if imp.dryRun {
		imp.log.Info("dry-run: would send workouts", "count", len(workouts))
	} else {
		if err := imp.client.SendWorkouts(workouts); err != nil {
			return fmt.Errorf("sending workout batch: %w", err)
		}
	}

	imp.stats.WorkoutsSent += len(workouts)

	for _, fi := range files {
		if !imp.dryRun {
			if err := imp.state.MarkSent(fi.relPath, fi.size, fi.hash); err != nil {
				imp.log.Warn("failed to mark sent", "file", fi.relPath, "error", err)
			}
		}
		imp.stats.FilesSent++
	}

	return nil
}
