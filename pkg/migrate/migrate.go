package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

const DefaultDir = "pkg/migrate/migrations"

// Run executes a standard goose command that requires a DB connection.
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	// BrickPool is Postgres today
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	// RunContext prints status output to stdout (goose internal)
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// CreateSQLMigration scaffolds a timestamped .sql migration file in dir.
func CreateSQLMigration(dir, name string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("goose create: %w", err)
	}
	return nil
}
