package database

import (
	"context"
	"fmt"
	"time"

	"restaurant-menu/pkg/utils"

	"go.uber.org/zap"
)

// Connect opens the configured store. Failed attempts are retried
// config.ConnectRetries times with a fixed config.RetryDelay in between.
func Connect(ctx context.Context, config utils.DatabaseConfig, log *zap.Logger) (DB, error) {
	attempts := config.ConnectRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := open(ctx, config)
		if err == nil {
			log.Info("Database connected",
				zap.String("driver", string(db.Dialect())),
				zap.Int("attempt", attempt),
			)
			return db, nil
		}
		lastErr = err

		log.Warn("Database not ready",
			zap.String("driver", config.Driver),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(config.RetryDelay):
		}
	}

	return nil, fmt.Errorf("connect database after %d attempts: %w", attempts, lastErr)
}

func open(ctx context.Context, config utils.DatabaseConfig) (DB, error) {
	switch Dialect(config.Driver) {
	case Postgres:
		return NewPostgres(ctx, config)
	case SQLite:
		return NewSQLite(ctx, config.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}
