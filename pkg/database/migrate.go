package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"go.uber.org/zap"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded migrations for the dialect of db in
// lexical order. Every migration is idempotent, so it runs on each start.
func Migrate(ctx context.Context, db DB, log *zap.Logger) error {
	dir := "migrations/" + string(db.Dialect())

	names, err := fs.Glob(migrationsFS, dir+"/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		log.Debug("Migration applied", zap.String("name", name))
	}

	log.Info("Migrations applied", zap.Int("count", len(names)))
	return nil
}
