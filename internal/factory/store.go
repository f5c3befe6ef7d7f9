// Package factory builds the storage backend selected by configuration.
package factory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/studylist/studylist-sync/internal/config"
	"github.com/studylist/studylist-sync/internal/store"
	"github.com/studylist/studylist-sync/internal/store/postgres"
	"github.com/studylist/studylist-sync/internal/store/sqlite"
)

// NewStore opens the configured backend, waits for connectivity and applies
// the schema. The returned *sql.DB is handed back so the caller owns Close.
// The connectivity wait covers deployments where the database container
// starts alongside the service.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, *sql.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := waitForPing(ctx, db, cfg, log); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("apply postgres schema: %w", err)
		}
		log.Info().Str("driver", "postgres").Msg("store ready")
		return postgres.NewWithDB(db), db, nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := sqlite.EnsureSchema(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("apply sqlite schema: %w", err)
		}
		log.Info().Str("driver", "sqlite").Str("path", cfg.SQLitePath).Msg("store ready")
		return sqlite.NewWithDB(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

func waitForPing(ctx context.Context, db *sql.DB, cfg *config.Config, log zerolog.Logger) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second

	attempt := 0
	op := func() error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("database not reachable yet")
			return err
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("database did not become reachable: %w", err)
	}
	return nil
}
