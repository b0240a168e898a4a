// Command server runs the comparator HTTP API.
//
// @title       Comparador API
// @version     1.0
// @description Side-by-side comparison of Peruvian legislators and candidates.
// @license.name MIT
// @BasePath    /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/votabienperu/comparador/internal/config"
	httpapi "github.com/votabienperu/comparador/internal/http"
	"github.com/votabienperu/comparador/internal/observability"
	"github.com/votabienperu/comparador/internal/postgrest"
	"github.com/votabienperu/comparador/internal/repo"
	"github.com/votabienperu/comparador/internal/services"
	"github.com/votabienperu/comparador/internal/sysutil"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	cfg := config.MustLoad()
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return eris.Wrap(err, "setup tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	src, closeSrc, err := openSource(ctx, cfg.Source)
	if err != nil {
		return err
	}
	defer closeSrc()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, src, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("source", cfg.Source.Kind).
			Str("base_path", cfg.APIBasePath).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return eris.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// openSource builds the configured services.Source and returns a closer for
// its underlying resources.
func openSource(ctx context.Context, sc config.DataSourceConfig) (services.Source, func(), error) {
	if sc.Kind == config.SourcePostgREST {
		c := postgrest.New(sc.PostgRESTURL, sc.PostgRESTAPIKey,
			postgrest.WithTimeout(sc.PostgRESTTimeout),
			postgrest.WithMaxRetries(sc.PostgRESTMaxRetries),
			postgrest.WithRateLimit(sc.PostgRESTRPS),
		)
		return c, func() {}, nil
	}

	var (
		db  *gorm.DB
		err error
	)
	switch sc.Kind {
	case config.SourcePostgres:
		db, err = repo.OpenPostgres(sc.DatabaseURL)
	default:
		db, err = repo.OpenSQLite(sc.DBPath)
	}
	if err != nil {
		return nil, nil, eris.Wrapf(err, "open %s", sc.Kind)
	}
	closer := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if err := repo.AutoMigrate(db); err != nil {
		closer()
		return nil, nil, eris.Wrap(err, "migrate")
	}
	if sc.SeedPath != "" {
		n, err := repo.SeedFile(ctx, db, sc.SeedPath)
		if err != nil {
			closer()
			return nil, nil, eris.Wrapf(err, "seed %s", sc.SeedPath)
		}
		log.Info().
			Int("persons", n.Persons).
			Int("legislators", n.Legislators).
			Int("candidates", n.Candidates).
			Int("metrics", n.Metrics).
			Msg("fixture loaded")
	}
	return repo.NewSource(db), closer, nil
}
