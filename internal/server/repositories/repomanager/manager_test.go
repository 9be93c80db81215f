package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/foodlog/internal/dbx"
	"github.com/dmitrijs2005/foodlog/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestNew(t *testing.T) {
	m, err := New("postgres")
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)

	m, err = New("sqlite")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepositoryManager{}, m)

	_, err = New("oracle")
	require.Error(t, err)
}

func TestFactories(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, m := range []RepositoryManager{&PostgresRepositoryManager{}, &SQLiteRepositoryManager{}} {
		assert.NotNil(t, m.Users(db))
		assert.NotNil(t, m.Meals(db))
		assert.NotNil(t, m.RefreshTokens(db))
	}
}

func TestRunMigrations_Dirs(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var dirs []string
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		dirs = append(dirs, dir)
		return nil
	})

	require.NoError(t, (&PostgresRepositoryManager{}).RunMigrations(context.Background(), db))
	require.NoError(t, (&SQLiteRepositoryManager{}).RunMigrations(context.Background(), db))
	assert.Equal(t, []string{"postgres", "sqlite"}, dirs)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	err = (&PostgresRepositoryManager{}).RunMigrations(context.Background(), db)
	assert.EqualError(t, err, "boom")
}

func TestSQLiteManager_MigratesAndServes(t *testing.T) {
	ctx := context.Background()
	db, err := dbx.OpenSQLite(filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	m := &SQLiteRepositoryManager{}
	require.NoError(t, m.RunMigrations(ctx, db))
	// goose records applied versions, so a second run is a no-op
	require.NoError(t, m.RunMigrations(ctx, db))

	u := &models.User{FullName: "A", Email: "a@example.com", PasswordHash: "h", Gender: "Other"}
	require.NoError(t, m.Users(db).Create(ctx, u))

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return m.Meals(tx).Create(ctx, &models.Meal{UserID: u.ID, Name: "Tea", Category: "Snack", Date: "2024-01-01"})
	})
	require.NoError(t, err)

	list, err := m.Meals(db).List(ctx, u.ID, models.MealFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
