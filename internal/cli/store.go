package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cdmlens/cdmlens/pkg/config"
	"github.com/cdmlens/cdmlens/pkg/retry"
	"github.com/cdmlens/cdmlens/pkg/store"
)

// openStore connects to the configured catalog store. Connection failures
// are retried with backoff since Mongo may still be starting up.
func openStore(ctx context.Context, cfg config.Config, logger *log.Logger) (store.Store, error) {
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("no store configured: set mongo.uri in the config file")
	}

	var st *store.MongoStore
	err := retry.WithBackoff(ctx, func() error {
		var connErr error
		st, connErr = store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if connErr != nil {
			logger.Warn("mongo connection failed, retrying", "err", connErr)
			return retry.Transient(connErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to store: %w", err)
	}

	logger.Debug("connected to store", "database", cfg.Mongo.Database)
	return st, nil
}
