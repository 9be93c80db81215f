// Package migrations embeds the goose schema migrations, one directory per
// record store dialect.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Dirs of the embedded migration sets.
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
