// Command recompute rebuilds derived standings for one or more scopes,
// optionally pulling fresh data from football-data.org first.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/season-tracker/internal/app"
	"github.com/riskibarqy/season-tracker/internal/config"
	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
	"github.com/riskibarqy/season-tracker/internal/usecase"
)

type options struct {
	scopesFile  string
	scopes      string
	workers     int
	ingest      bool
	fullRefresh bool
}

type report struct {
	Refreshed []usecase.RefreshResult       `json:"refreshed,omitempty"`
	Recompute usecase.RecomputeBatchResult `json:"recompute"`
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.NewJSON(cfg.LogLevel).With("service", "season-tracker-recompute")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger, os.Stdout); err != nil {
		logger.Error("recompute run failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("recompute", flag.ContinueOnError)
	fs.StringVar(&opts.scopesFile, "scopes-file", "", "YAML file listing scopes to rebuild")
	fs.StringVar(&opts.scopes, "scopes", "", "comma separated CODE:SEASON list, e.g. ELC:2025,PL:2024")
	fs.IntVar(&opts.workers, "workers", 0, "parallel scopes (defaults to RECOMPUTE_WORKERS)")
	fs.BoolVar(&opts.ingest, "ingest", false, "refresh raw data from football-data.org before recomputing")
	fs.BoolVar(&opts.fullRefresh, "full-refresh", false, "delete raw matches of each scope before ingesting")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.fullRefresh && !opts.ingest {
		return options{}, fmt.Errorf("-full-refresh requires -ingest")
	}
	return opts, nil
}

func resolveScopes(opts options, fallback competition.Scope) ([]competition.Scope, error) {
	scopes := make([]competition.Scope, 0, 4)
	if opts.scopesFile != "" {
		fromFile, err := loadScopesFile(opts.scopesFile)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, fromFile...)
	}
	if opts.scopes != "" {
		fromFlag, err := parseScopeList(opts.scopes)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, fromFlag...)
	}
	if len(scopes) == 0 {
		scopes = append(scopes, fallback)
	}
	return scopes, nil
}

func run(ctx context.Context, cfg config.Config, opts options, logger *logging.Logger, out io.Writer) error {
	scopes, err := resolveScopes(opts, cfg.DefaultScope)
	if err != nil {
		return err
	}
	workers := opts.workers
	if workers <= 0 {
		workers = cfg.RecomputeWorkers
	}

	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn("close app resources", "error", err)
		}
	}()

	var rep report
	if opts.ingest {
		for _, scope := range scopes {
			refreshed, err := container.Ingestion.Refresh(ctx, usecase.RefreshInput{
				Scope:         scope,
				FullRefresh:   opts.fullRefresh,
				SkipRecompute: true,
			})
			if err != nil {
				return fmt.Errorf("refresh %s: %w", scope, err)
			}
			rep.Refreshed = append(rep.Refreshed, refreshed)
		}
	}

	rep.Recompute, err = container.Recompute.RecomputeMany(ctx, scopes, workers)
	if err != nil {
		return err
	}
	logger.Info("recompute run finished",
		"scopes", rep.Recompute.ScopeCount,
		"succeeded", rep.Recompute.SuccessCount,
		"failed", rep.Recompute.FailedCount,
	)

	if err := sonic.ConfigDefault.NewEncoder(out).Encode(rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if rep.Recompute.FailedCount > 0 {
		return fmt.Errorf("%d of %d scopes failed", rep.Recompute.FailedCount, rep.Recompute.ScopeCount)
	}
	return nil
}
