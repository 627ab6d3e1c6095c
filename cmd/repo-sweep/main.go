package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"repo-sweep/internal/clone"
	"repo-sweep/internal/config"
	"repo-sweep/internal/database"
	"repo-sweep/internal/exitcodes"
	"repo-sweep/internal/logging"
	"repo-sweep/internal/metrics"
	"repo-sweep/internal/repourl"
	"repo-sweep/internal/safety"
	"repo-sweep/internal/wipe"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "/etc/repo-sweep/config.yaml", "Path to configuration file")
	dryRun := flag.Bool("dry-run", false, "Walk and log the sweep without deleting anything")
	wipeOnly := flag.Bool("wipe-only", false, "Sweep the destination and exit without cloning")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(exitcodes.InvalidConfig)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to load config: %v\n", err)
		os.Exit(exitcodes.InvalidConfig)
	}

	// Initialize logger
	logger := logging.NewWithConfig(cfg)

	repoURL, err := repourl.Normalize(flag.Arg(0))
	if err != nil {
		logger.Printf("ERROR: %v", err)
		os.Exit(exitcodes.InvalidConfig)
	}

	dest := flag.Arg(1)
	if dest == "" {
		if len(cfg.AllowedRoots) == 0 {
			logger.Println("ERROR: no destination given and no allowed roots configured")
			os.Exit(exitcodes.InvalidConfig)
		}
		dest = filepath.Join(cfg.AllowedRoots[0], repourl.DirName(repoURL))
	}

	logger.Printf("repo-sweep starting: repo=%s dest=%s", repoURL, dest)
	if *dryRun {
		logger.Println("DRY RUN MODE: No files will be deleted")
	}

	// Initialize metrics (Prometheus)
	metrics.Init()
	if cfg.Prometheus.Port > 0 {
		addr := cfg.PrometheusAddress()
		logger.Printf("Starting Prometheus metrics on %s", addr)
		metrics.StartServer(addr, logger)
	}

	// Initialize the sweep audit database
	var db *database.SweepDB
	if cfg.DatabasePath != "" {
		logger.Printf("Opening sweep database: %s", cfg.DatabasePath)
		db, err = database.NewSweepDB(cfg.DatabasePath)
		if err != nil {
			logger.Printf("ERROR: Failed to open database: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Printf("ERROR: Failed to close database: %v", err)
			}
		}()
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	// Wire the wipe core: the remover sees only the diagnostics sink and
	// the audit recorder, never the logger or database directly
	var rec wipe.Recorder
	if db != nil {
		rec = db
	}
	remover := wipe.NewRemover(wipe.NewStdSink(logger), *dryRun, rec)
	remover.SetMetrics(wipe.DefaultMetrics())

	cloner := clone.NewCloner(cfg, logger, remover)

	if err := cloner.Prepare(ctx, dest); err != nil {
		logger.Printf("ERROR: Sweep failed: %v", err)
		os.Exit(sweepExitCode(err))
	}
	logger.Printf("destination swept: %s", dest)

	if *wipeOnly || *dryRun {
		logger.Println("repo-sweep done (no clone requested)")
		return
	}

	if err := cloner.Clone(ctx, repoURL, dest); err != nil {
		logger.Printf("ERROR: Clone failed: %v", err)
		metrics.ErrorsTotal.Inc()
		os.Exit(exitcodes.CloneFailed)
	}

	logger.Printf("checkout complete: %s", dest)
}

// sweepExitCode distinguishes "could not enumerate" and "could not guarantee
// destruction" from safety refusals; operators remediate them differently
func sweepExitCode(err error) int {
	switch {
	case errors.Is(err, safety.ErrInvalidPath),
		errors.Is(err, safety.ErrProtectedPath),
		errors.Is(err, safety.ErrOutsideAllowed),
		errors.Is(err, safety.ErrTraversal),
		errors.Is(err, safety.ErrSymlinkEscape):
		return exitcodes.SafetyViolation
	default:
		return exitcodes.RuntimeError
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: repo-sweep [flags] <repository> [destination]\n\n")
	fmt.Fprintf(os.Stderr, "Sweeps the destination directory clean, then checks the repository out into it.\n")
	fmt.Fprintf(os.Stderr, "If destination is omitted it is derived from the repository name under the\nfirst configured allowed root.\n\nFlags:\n")
	flag.PrintDefaults()
}
