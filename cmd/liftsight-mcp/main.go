package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/liftsight/internal/config"
	"github.com/meltforce/liftsight/internal/mcp"
	"github.com/meltforce/liftsight/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "LiftSight server URL (remote mode)")
	configPath := flag.String("config", "", "path to config file (direct database mode)")
	userID := flag.Int("user", 1, "user ID to serve data for")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftsight-mcp", Version)
		return
	}

	// Logs go to stderr; stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	switch {
	case *serverURL != "":
		ds = mcp.NewHTTPClient(strings.TrimRight(*serverURL, "/"))
		log.Info("serving from remote server", "url", *serverURL)
	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("serving from database")
	default:
		fmt.Fprintf(os.Stderr, "Usage: liftsight-mcp -server <URL> | -config config.yaml [-user N]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	srv := mcp.New(ds, Version, log)

	err := mcpserver.ServeStdio(srv, mcpserver.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, *userID)
	}))
	if err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
