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

// PostgresRepositoryManager serves the pgx-backed record store.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

func (m *PostgresRepositoryManager) Meals(db dbx.DBTX) meals.Repository {
	return meals.NewSQLRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLRepository(db)
}

// RunMigrations applies the embedded postgres migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.PostgresDir)
}
