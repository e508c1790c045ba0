package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdmlens/cdmlens/internal/server"
	"github.com/cdmlens/cdmlens/pkg/cache"
	"github.com/cdmlens/cdmlens/pkg/config"
	"github.com/cdmlens/cdmlens/pkg/layout"
	"github.com/cdmlens/cdmlens/pkg/observability"
	"github.com/cdmlens/cdmlens/pkg/pipeline"
	"github.com/cdmlens/cdmlens/pkg/retry"
	"github.com/cdmlens/cdmlens/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may run after SIGTERM.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		mode       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the CDM Lens HTTP API",
		Long: `Run the CDM Lens HTTP API.

The server exposes catalog CRUD, CSV import/export, and the graph pipeline.
Configuration comes from the TOML file with flags taking precedence. Without
mongo.uri the server uses an in-memory store; without redis.addr it caches
pipeline artifacts on the local filesystem.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if mode != "" {
				cfg.Server.DefaultMode = mode
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "default resolver mode (overrides config)")

	return cmd
}

// runServe wires the store, cache, and router, then serves until ctx is done.
func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	st, err := c.serveStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	artifactCache, keyer, err := c.serveCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer artifactCache.Close()

	observability.SetCacheHooks(server.CacheMetrics{})

	runner := pipeline.NewRunner(artifactCache, keyer, c.Logger)
	if cfg.Cache.TTL.Duration > 0 {
		runner.TTL = cfg.Cache.TTL.Duration
	}
	srv := server.New(st, runner, c.Logger, layout.Mode(cfg.Server.DefaultMode))

	httpServer := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     srv.Router(),
		ReadTimeout: cfg.Server.ReadTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Server.Addr, "mode", cfg.Server.DefaultMode)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveStore picks Mongo when configured, otherwise the in-memory store.
func (c *CLI) serveStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Mongo.URI == "" {
		printWarning("mongo.uri not set, catalog data will not survive restarts")
		return store.NewMemoryStore(), nil
	}
	return openStore(ctx, cfg, c.Logger)
}

// redisKeyPrefix namespaces this application's keys on a shared Redis
// instance.
const redisKeyPrefix = "cdmlens:"

// serveCache picks Redis when configured, otherwise the local file cache.
// A nil keyer means the caller should use the default.
func (c *CLI) serveCache(ctx context.Context, cfg config.Config) (cache.Cache, cache.Keyer, error) {
	if cfg.Redis.Addr != "" {
		var rc cache.Cache
		err := retry.WithBackoff(ctx, func() error {
			var connErr error
			rc, connErr = cache.NewRedisCache(ctx, cache.RedisConfig{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if connErr != nil {
				c.Logger.Warn("redis connection failed, retrying", "err", connErr)
				return retry.Transient(connErr)
			}
			return nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return rc, cache.NewScopedKeyer(nil, redisKeyPrefix), nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			c.Logger.Warn("no cache directory available, caching disabled", "err", err)
			return cache.NewNullCache(), nil, nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}
