// Package repomanager vends the repositories of one record store backend
// and migrates its schema with goose.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/foodlog/internal/dbx"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/meals"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// RepositoryManager binds repositories to a DBTX, which may be the pool or a
// transaction started with dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Meals(db dbx.DBTX) meals.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// New returns the manager for backend ("postgres" or "sqlite").
func New(backend string) (RepositoryManager, error) {
	switch backend {
	case "postgres":
		return &PostgresRepositoryManager{}, nil
	case "sqlite":
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unknown record backend %q", backend)
	}
}
