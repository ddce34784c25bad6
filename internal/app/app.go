package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/soccer-academy/internal/config"
	"github.com/riskibarqy/soccer-academy/internal/domain/club"
	"github.com/riskibarqy/soccer-academy/internal/infrastructure/account/statictoken"
	cacherepo "github.com/riskibarqy/soccer-academy/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/soccer-academy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/soccer-academy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/soccer-academy/internal/interfaces/httpapi"
	"github.com/riskibarqy/soccer-academy/internal/platform/cache"
	"github.com/riskibarqy/soccer-academy/internal/platform/dburl"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
	"github.com/riskibarqy/soccer-academy/internal/usecase"
)

// NewHTTPServer wires storage, services and the router. The returned cleanup
// releases the database pool and must be called after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		tx      usecase.TxManager
		clubs   club.Repository
		cleanup = func() error { return nil }
	)

	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore(memory.DefaultSeed())
		tx = store.TxManager()
		clubs = store.Clubs
		logger.Info("storage ready", "driver", config.StorageMemory)
	default:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup = db.Close

		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
			logger.Info("bootstrap seed applied")
		}

		tx = postgres.NewTxManager(db)
		clubs = postgres.NewClubRepository(db)
		logger.Info("storage ready", "driver", config.StoragePostgres, "db", dburl.Redact(cfg.DBURL))
	}

	var sharedCache *cache.Store
	if cfg.CacheEnabled {
		sharedCache = cache.NewStore(cfg.CacheTTL)
		clubs = cacherepo.NewClubRepository(clubs, sharedCache)
	}

	scoreSvc := usecase.NewScoreService(tx, sharedCache, logger, cfg.ScoreRecomputeWorkers)
	handler := httpapi.NewHandler(
		usecase.NewMatchService(tx, sharedCache, logger),
		scoreSvc,
		usecase.NewStatService(tx, scoreSvc, logger),
		usecase.NewParticipantService(tx, logger),
		usecase.NewClubService(clubs, logger),
		logger,
	)

	routerOpts := httpapi.RouterOptions{CORSAllowedOrigins: cfg.CORSAllowedOrigins}
	if cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody {
		routerOpts.RequestBodyMaxBytes = cfg.UptraceRequestBodyMaxBytes
	}
	router := httpapi.NewRouter(handler, statictoken.NewVerifier(cfg.AdminAPIToken, logger), logger, routerOpts)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dburl.DatabaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	otelsql.ReportDBStatsMetrics(db.DB)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
