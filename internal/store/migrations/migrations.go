// Package migrations holds the Postgres schema migrations for the store.
// Each migration lives in a file named <timestamp>_<name>.go, the format
// bun/migrate derives migration names from.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
