package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/season-tracker/external/footballdata"
	"github.com/riskibarqy/season-tracker/internal/config"
	"github.com/riskibarqy/season-tracker/internal/domain/ingestrun"
	"github.com/riskibarqy/season-tracker/internal/domain/leaguestanding"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
	"github.com/riskibarqy/season-tracker/internal/domain/team"
	"github.com/riskibarqy/season-tracker/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/season-tracker/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/season-tracker/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/season-tracker/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/season-tracker/internal/platform/cache"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
	"github.com/riskibarqy/season-tracker/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Container holds the wired services shared by the API and the batch
// command.
type Container struct {
	Standings *usecase.StandingService
	Recompute *usecase.RecomputeService
	Ingestion *usecase.IngestionService

	closers []func() error
}

type repositories struct {
	teams     team.Repository
	matches   match.Repository
	standings leaguestanding.Repository
	runs      ingestrun.Repository
}

// Build selects the storage backend and wires services on top of it. The
// memory backend is seeded and recomputed once so the API has data to serve.
func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	container := &Container{}
	repos, err := container.buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		repos.teams = cache.NewTeamRepository(repos.teams, basecache.NewStore[[]team.Team](cfg.CacheTTL))
	}

	recomputeService := usecase.NewRecomputeService(repos.matches, repos.standings, logger)
	container.Recompute = recomputeService
	container.Standings = usecase.NewStandingService(repos.standings, repos.teams, cfg.FormLength, logger)
	container.Ingestion = usecase.NewIngestionService(
		newMatchDataProvider(cfg, logger),
		repos.teams,
		repos.matches,
		repos.runs,
		recomputeService,
		nil,
		logger,
	)

	if cfg.StorageDriver == config.StorageMemory {
		if _, err := recomputeService.Recompute(ctx, memory.SeedScope); err != nil {
			_ = container.Close()
			return nil, fmt.Errorf("recompute seed scope: %w", err)
		}
	}

	return container, nil
}

func (c *Container) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("storage selected", "driver", config.StorageMemory, "seed_scope", memory.SeedScope.Key())
		return repositories{
			teams:     memory.NewTeamRepository(memory.SeedTeams()),
			matches:   memory.NewMatchRepository(memory.SeedMatches()),
			standings: memory.NewLeagueStandingRepository(),
			runs:      memory.NewIngestRunRepository(),
		}, nil
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		c.closers = append(c.closers, db.Close)
		logger.Info("storage selected", "driver", config.StoragePostgres, "db_name", dbNameFromDSN(cfg.DBURL))
		return repositories{
			teams:     postgres.NewTeamRepository(db),
			matches:   postgres.NewMatchRepository(db),
			standings: postgres.NewLeagueStandingRepository(db),
			runs:      postgres.NewIngestRunRepository(db),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// newMatchDataProvider returns nil when ingestion is disabled; the
// ingestion service then reports the provider as unavailable.
func newMatchDataProvider(cfg config.Config, logger *logging.Logger) usecase.MatchDataProvider {
	if !cfg.FootballDataEnabled {
		logger.Info("football-data ingestion disabled", "reason", "FOOTBALL_DATA_ENABLED=false")
		return nil
	}

	return footballdata.NewClient(footballdata.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.FootballDataTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:        cfg.FootballDataBaseURL,
		Token:          cfg.FootballDataToken,
		Timeout:        cfg.FootballDataTimeout,
		MaxRetries:     cfg.FootballDataMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.FootballDataCircuitBreaker,
	})
}

func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func NewHTTPServer(cfg config.Config, container *Container, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(
		container.Standings,
		container.Recompute,
		container.Ingestion,
		cfg.DefaultScope,
		cfg.RecomputeWorkers,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
