package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/foodlog/internal/dbx"
	"github.com/dmitrijs2005/foodlog/internal/server/migrations"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/meals"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLiteRepositoryManager serves the modernc.org/sqlite record store. The
// repositories share their SQL with Postgres; placeholders are rebound here.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(dbx.Rebind(db))
}

func (m *SQLiteRepositoryManager) Meals(db dbx.DBTX) meals.Repository {
	return meals.NewSQLRepository(dbx.Rebind(db))
}

func (m *SQLiteRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLRepository(dbx.Rebind(db))
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.SQLiteDir)
}
