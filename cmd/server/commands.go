package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/actuallystonmai/stylist-kiosk/internal/cache"
	"github.com/actuallystonmai/stylist-kiosk/internal/catalog"
	"github.com/actuallystonmai/stylist-kiosk/internal/config"
	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
	"github.com/actuallystonmai/stylist-kiosk/internal/handler"
	"github.com/actuallystonmai/stylist-kiosk/internal/logging"
	"github.com/actuallystonmai/stylist-kiosk/internal/model"
	"github.com/actuallystonmai/stylist-kiosk/internal/repository"
	"github.com/actuallystonmai/stylist-kiosk/internal/router"
	"github.com/actuallystonmai/stylist-kiosk/internal/service"
	"github.com/actuallystonmai/stylist-kiosk/seeds"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the recommendation HTTP API (default)",
		Action: runServe,
	}
}

func migrateUpCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate-up",
		Usage: "Create the item mirror tables",
		Action: func(c *cli.Context) error {
			return withRepository(c.Context, func(ctx context.Context, repo *repository.Repository) error {
				return migrate(ctx, repo, "migrations/create_tables.up.sql")
			})
		},
	}
}

func migrateDownCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate-down",
		Usage: "Drop the item mirror tables",
		Action: func(c *cli.Context) error {
			return withRepository(c.Context, func(ctx context.Context, repo *repository.Repository) error {
				return migrate(ctx, repo, "migrations/create_tables.down.sql")
			})
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Write a generated demo catalog to the item mirror table",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "count",
				Value: 200,
				Usage: "Number of demo items",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Replace existing items",
			},
		},
		Action: func(c *cli.Context) error {
			return withRepository(c.Context, func(ctx context.Context, repo *repository.Repository) error {
				count, err := repo.CountItems(ctx)
				if err != nil {
					return fmt.Errorf("check items count: %w", err)
				}
				if count > 0 && !c.Bool("force") {
					logging.Info().Int("items", count).Msg("database already seeded, skipping")
					return nil
				}
				return seeds.Setup(ctx, repo, c.Int("count"))
			})
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Load the catalog file and mirror it to postgres",
		Action: func(c *cli.Context) error {
			loader := catalog.NewFileLoader(cfg.CatalogPaths, cfg.PlaceholderImage)
			cat, err := loader.Load(c.Context)
			if err != nil {
				return err
			}
			return withRepository(c.Context, func(ctx context.Context, repo *repository.Repository) error {
				n, err := repo.ReplaceItems(ctx, cat.Items())
				if err != nil {
					return fmt.Errorf("import items: %w", err)
				}
				logging.Info().
					Str("source", cat.Source()).
					Int("items", n).
					Int("skipped_rows", cat.Skipped()).
					Msg("catalog imported")
				return nil
			})
		},
	}
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ------------ PostgreSQL ---------------
	var repo *repository.Repository
	if cfg.DatabaseURL != "" {
		pool, err := connectDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = repository.NewRepository(pool)
	}

	// ------------ Redis ---------------
	var poolCache service.PoolCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		rc := cache.NewCache(rdb, cfg.CacheTTL)
		if err := rc.Ping(ctx); err != nil {
			logging.Warn().Err(err).Msg("redis unreachable, pool cache disabled")
		} else {
			logging.Info().Msg("connected to Redis")
			poolCache = rc
		}
	}

	// ------------ Catalog ---------------
	var (
		loader catalog.Loader
		store  service.ItemStore
	)
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		loader = catalog.NewStoreLoader(repo)
	default:
		loader = catalog.NewFileLoader(cfg.CatalogPaths, cfg.PlaceholderImage)
		if repo != nil {
			store = repo
		}
	}

	svc := service.NewService(loader, model.NewClient(model.DefaultVibeTable, cfg.RandomSeed), poolCache, store)
	if _, err := svc.Load(ctx); err != nil {
		logging.Error().Err(err).Msg("catalog load failed, serving with an empty catalog")
	}

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.Setup(handler.NewHandler(svc), router.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func withRepository(ctx context.Context, fn func(context.Context, *repository.Repository) error) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL is not set", domain.ErrStoreDisabled)
	}
	pool, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, repository.NewRepository(pool))
}

func connectDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := waitForDB(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logging.Info().Msg("connected to PostgreSQL")
	return pool, nil
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logging.Info().Msgf("waiting for database... (%d/30)", i+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrate(ctx context.Context, repo *repository.Repository, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if err := repo.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	logging.Info().Str("file", path).Msg("migration applied")
	return nil
}
