package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"golang.org/x/sync/errgroup"

	cacheRedis "github.com/shortify/shortify/internal/adapter/cache/redis"
	delivery "github.com/shortify/shortify/internal/adapter/delivery/http"
	repoPostgres "github.com/shortify/shortify/internal/adapter/repository/postgres"
	"github.com/shortify/shortify/internal/config"
	"github.com/shortify/shortify/internal/shortcode"
	"github.com/shortify/shortify/internal/urlcheck"
	"github.com/shortify/shortify/internal/usecase"
	"github.com/shortify/shortify/pkg/postgres"
	"github.com/shortify/shortify/pkg/redis"
)

// Run wires the application together and serves HTTP until ctx is canceled.
func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	db, err := postgres.New(
		ctx,
		cfg.Postgres.DSN(),
		postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := postgres.RunMigrations("file://migrations", cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis.URL, redis.WithPoolSize(cfg.Redis.PoolSize))
	if err != nil {
		return fmt.Errorf("%s: failed to connect to redis: %w", op, err)
	}
	defer redisClient.Close()

	logger := httplog.NewLogger("shortify", httplog.Options{
		JSON:    cfg.Env != config.EnvDev,
		Concise: cfg.Env == config.EnvDev,
		Tags: map[string]string{
			"env": cfg.Env,
		},
	})

	checkerOpts := []urlcheck.Option{}
	if cfg.Env == config.EnvDev {
		checkerOpts = append(checkerOpts, urlcheck.WithPrivateHosts())
	}

	urlUseCase := usecase.New(
		repoPostgres.NewURLRepository(db),
		cacheRedis.NewURLCache(redisClient),
		urlcheck.New(checkerOpts...),
		shortcode.NewGenerator(),
		logger.Logger,
		cfg.ShortCodeLength,
		cfg.Redis.CacheTTL,
	)

	r := delivery.NewRouter(logger, urlUseCase, cfg.BaseURL)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        r,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
