// Coachd is the backend daemon for a peer-coaching platform.
//
// It serves a REST API for programs, groups, members and sessions, runs
// LLM-backed transcript extraction, and persists the reviewed results to a
// local SQLite database.
//
// Usage:
//
//	# Start with defaults (SQLite file coachd.db, port 4000)
//	coachd
//
//	# Load a YAML config file, override via environment
//	COACHD_SERVER_PORT=9090 coachd -config config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ownersup/coachd/internal/analytics"
	"github.com/ownersup/coachd/internal/config"
	"github.com/ownersup/coachd/internal/extraction"
	coachhttp "github.com/ownersup/coachd/internal/http"
	"github.com/ownersup/coachd/internal/logging"
	"github.com/ownersup/coachd/internal/matching"
	"github.com/ownersup/coachd/internal/reconcile"
	"github.com/ownersup/coachd/internal/session"
	"github.com/ownersup/coachd/internal/store"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if args := flag.Args(); len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  coachd           Start the coachd daemon\n")
			fmt.Fprintf(os.Stderr, "  coachd version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

func printVersion() {
	fmt.Printf("coachd\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run initializes all dependencies and blocks until the context is
// cancelled, then shuts the server down gracefully.
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() // Best-effort sync on shutdown
	}()

	logger.Info(ctx, "starting coachd",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("db_path", cfg.DB.Path),
		zap.String("extraction_provider", cfg.Extraction.Provider))

	st, err := store.Open(cfg.DB.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	oracle, err := extraction.NewOracle(extraction.Config{
		Provider:  cfg.Extraction.Provider,
		Model:     cfg.Extraction.Model,
		APIKey:    cfg.Extraction.APIKey.Value(),
		BaseURL:   cfg.Extraction.BaseURL,
		MaxTokens: cfg.Extraction.MaxTokens,
		Timeout:   cfg.Extraction.Timeout.Duration(),
	})
	if err != nil {
		return fmt.Errorf("failed to create extraction oracle: %w", err)
	}
	if !oracle.Available() {
		logger.Warn(ctx, "extraction disabled, transcript processing will return 503")
	}

	reconciler := reconcile.New(matching.New(cfg.Matching.Threshold))
	sessions := session.New(st, oracle, reconciler, logger, session.Config{
		MinTranscriptLength: cfg.Transcript.MinLength,
		MaxTranscriptLength: cfg.Transcript.MaxLength,
	})

	srv, err := coachhttp.NewServer(st, sessions, oracle, analytics.New(st, logger), logger, &coachhttp.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
