package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"student-dashboard-backend/internal/config"
	"student-dashboard-backend/internal/store"
)

// setupDatabase applies the schema migrations for the configured SQL backend
func setupDatabase(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		dialect store.Dialect
		dsn     string
	)
	switch cfg.DataBackend {
	case config.BackendPostgres:
		// wait for the server before handing the DSN to the migrator
		db, err := openPostgres(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		db.Close()
		dialect, dsn = store.Postgres, cfg.DatabaseURL
	case config.BackendSQLite:
		dialect, dsn = store.SQLite, cfg.SQLiteDBPath
	default:
		return fmt.Errorf("nothing to migrate for %s backend", cfg.DataBackend)
	}

	log.Info().Str("dialect", string(dialect)).Msg("Applying migrations...")
	if err := store.Migrate(dialect, dsn); err != nil {
		return err
	}
	log.Info().Msg("Schema is up to date")
	return nil
}
