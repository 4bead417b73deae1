package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"github.com/abhisek/wordmath/internal/store/migrations"
)

// ConnectPostgres opens a bun handle for the Postgres database at url.
// A non-empty key overrides the password in the URL.
func ConnectPostgres(url, key string) *bun.DB {
	opts := []pgdriver.Option{pgdriver.WithDSN(url)}
	if key != "" {
		opts = append(opts, pgdriver.WithPassword(key))
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies all pending Postgres migrations and returns the names
// of the ones applied by this call.
func Migrate(ctx context.Context, db *bun.DB) ([]string, error) {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var applied []string
	if group != nil {
		for _, m := range group.Migrations {
			applied = append(applied, m.Name)
		}
	}
	return applied, nil
}

// Rollback reverts the most recently applied migration group.
func Rollback(ctx context.Context, db *bun.DB) ([]string, error) {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	group, err := migrator.Rollback(ctx)
	if err != nil {
		return nil, fmt.Errorf("rollback: %w", err)
	}

	var reverted []string
	if group != nil {
		for _, m := range group.Migrations {
			reverted = append(reverted, m.Name)
		}
	}
	return reverted, nil
}

// OpenPostgres connects to Postgres, applies pending migrations and
// returns a store over the connection.
func OpenPostgres(ctx context.Context, url, key string) (*SQLStore, error) {
	db := ConnectPostgres(url, key)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return newSQLStore(db.DB, squirrel.Dollar, db.Close), nil
}
