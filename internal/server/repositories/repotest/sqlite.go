// Package repotest opens throwaway, fully migrated SQLite databases for
// repository and service tests.
package repotest

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/foodlog/internal/dbx"
	"github.com/dmitrijs2005/foodlog/internal/server/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// OpenSQLite returns a migrated database in t.TempDir. It is closed on
// cleanup. Repositories must be handed dbx.Rebind(db).
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	db, err := dbx.OpenSQLite(filepath.Join(t.TempDir(), "foodlog_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fsys, err := fs.Sub(migrations.Migrations, migrations.SQLiteDir)
	require.NoError(t, err)

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	require.NoError(t, err)

	_, err = provider.Up(context.Background())
	require.NoError(t, err)

	return db
}
