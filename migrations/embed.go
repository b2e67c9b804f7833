// Package migrations embeds the goose SQL migrations for both store drivers.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Directories inside FS, per dialect.
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
