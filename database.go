package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"student-dashboard-backend/internal/config"
	"student-dashboard-backend/internal/store"
)

const (
	maxRetries = 60
	retryDelay = 2 * time.Second
)

// openPostgres connects to databaseURL, waiting for the server to accept
// connections.
func openPostgres(ctx context.Context, databaseURL string, log zerolog.Logger) (*sql.DB, error) {
	pgConfig, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		db := stdlib.OpenDB(*pgConfig)
		err := db.PingContext(ctx)
		if err == nil {
			log.Info().Msg("Database connection established")
			return db, nil
		}
		db.Close()
		if i == maxRetries-1 {
			return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
		}

		ev := log.Warn().Int("attempt", i+1).Int("max", maxRetries).Dur("retry_in", retryDelay)
		// Log the actual error on the first few attempts and every 10th after that
		if i%10 == 0 || i < 5 {
			ev = ev.Err(err)
		}
		ev.Msg("Database not ready")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("failed to connect to database")
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(store.SQLite.DriverName(), path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return db, nil
}

// openStore builds the Store for cfg.DataBackend. The sqlite schema is
// migrated on open; postgres expects -migrate to have been run.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.DataBackend {
	case config.BackendPostgres:
		db, err := openPostgres(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return store.NewSQL(db, store.Postgres), nil
	case config.BackendSQLite:
		if err := store.Migrate(store.SQLite, cfg.SQLiteDBPath); err != nil {
			return nil, err
		}
		db, err := openSQLite(ctx, cfg.SQLiteDBPath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLiteDBPath).Msg("SQLite store ready")
		return store.NewSQL(db, store.SQLite), nil
	default:
		log.Info().Msg("Using in-memory store")
		return store.NewMemory(), nil
	}
}
