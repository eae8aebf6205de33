package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pickrush/pickrush/external/jobqueue"
	"github.com/pickrush/pickrush/external/sportsdata"
	"github.com/pickrush/pickrush/internal/config"
	"github.com/pickrush/pickrush/internal/domain/pick"
	"github.com/pickrush/pickrush/internal/domain/user"
	"github.com/pickrush/pickrush/internal/infrastructure/account/accounts"
	repocache "github.com/pickrush/pickrush/internal/infrastructure/repository/cache"
	"github.com/pickrush/pickrush/internal/infrastructure/repository/memory"
	"github.com/pickrush/pickrush/internal/infrastructure/repository/postgres"
	"github.com/pickrush/pickrush/internal/interfaces/httpapi"
	"github.com/pickrush/pickrush/internal/platform/cache"
	"github.com/pickrush/pickrush/internal/platform/logging"
	"github.com/pickrush/pickrush/internal/platform/resilience"
	"github.com/pickrush/pickrush/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

// NewHTTPServer wires repositories, external clients, and services into a
// ready-to-run HTTP server. The returned cleanup closes the database pool
// and must be called after the server shuts down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		pickRepo pick.Repository
		userRepo user.Repository
		cleanup  = func() error { return nil }
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		pickRepo = postgres.NewPickRepository(db)
		userRepo = postgres.NewUserRepository(db)
		cleanup = db.Close
		logger.Info("storage ready", "driver", cfg.StorageDriver, "database", dbNameFromURL(cfg.DBURL))
	default:
		pickRepo = memory.NewPickRepository()
		userRepo = memory.NewUserRepository()
		logger.Info("storage ready", "driver", cfg.StorageDriver)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
		userRepo = repocache.NewUserRepository(userRepo, store)
	} else {
		store = cache.NewStore(0)
	}

	sports := sportsdata.NewClient(sportsdata.ClientConfig{
		BaseURL:    cfg.SportsDataBaseURL,
		APIKey:     cfg.SportsDataAPIKey,
		Timeout:    cfg.SportsDataTimeout,
		MaxRetries: cfg.SportsDataMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SportsDataCircuitEnabled,
			FailureThreshold: cfg.SportsDataCircuitFailureCount,
			OpenTimeout:      cfg.SportsDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SportsDataCircuitHalfOpenMax,
		},
	})

	var jobs usecase.JobPublisher
	if cfg.QStashEnabled {
		jobs = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	feedSvc := usecase.NewFeedService(sports, sports, sports, pickRepo, store, logger)
	picksSvc := usecase.NewPicksService(sports, pickRepo, userRepo, logger)
	leaderboardSvc := usecase.NewLeaderboardService(userRepo)
	badgeSvc := usecase.NewBadgeService(userRepo)
	statLeadersSvc := usecase.NewStatLeadersService(sports, sports, store, logger)
	resolutionSvc := usecase.NewResolutionService(sports, pickRepo, userRepo, jobs, logger, cfg.ResolutionWorkers)

	verifier := accounts.NewClient(
		&http.Client{Timeout: cfg.AccountsTimeout},
		cfg.AccountsBaseURL,
		cfg.AccountsIntrospectPath,
		cfg.AccountsAdminKey,
		logger,
	)

	handler := httpapi.NewHandler(
		feedSvc,
		picksSvc,
		leaderboardSvc,
		badgeSvc,
		statLeadersSvc,
		resolutionSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
