package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/meltforce/liftsight/internal/importer"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "LiftSight server URL (e.g. https://liftsight.tail1234.ts.net)")
	exportDir := flag.String("path", "", "path to workout-log export directory")
	apiKey := flag.String("api-key", os.Getenv("LIFTSIGHT_API_KEY"), "ingest API key (default $LIFTSIGHT_API_KEY)")
	dryRun := flag.Bool("dry-run", false, "parse and convert but don't send to server")
	batchSize := flag.Int("batch-size", 25, "workouts per ingest request")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftsight-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftsight-import -server <URL> -path <export dir> [-api-key KEY] [-dry-run] [-batch-size N]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *serverURL == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}

	// Strip trailing slash from server URL
	*serverURL = strings.TrimRight(*serverURL, "/")

	info, err := os.Stat(*exportDir)
	if err != nil || !info.IsDir() {
		log.Error("export directory not found", "path", *exportDir)
		os.Exit(1)
	}

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	stateDir := filepath.Join(homeDir, ".liftsight-import")

	state, err := importer.OpenStateDB(stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	client := importer.NewClient(*serverURL, *apiKey)

	if *dryRun {
		log.Info("DRY RUN mode, files will be parsed but not sent")
	}

	imp := importer.New(client, state, *exportDir, *dryRun, *batchSize, log)
	stats, err := imp.Run()
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("import complete")
}

func printStats(stats *importer.Stats) {
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Files total:    %d\n", stats.FilesTotal)
	fmt.Printf("  Files sent:     %d\n", stats.FilesSent)
	fmt.Printf("  Files skipped:  %d (already sent or empty)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:  %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  Workouts sent:  %d\n", stats.WorkoutsSent)
	fmt.Println()
}
