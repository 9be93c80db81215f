package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/dmitrijs2005/foodlog/internal/dbx"
	"github.com/dmitrijs2005/foodlog/internal/logging"
	"github.com/dmitrijs2005/foodlog/internal/objectstore/memstore"
	"github.com/dmitrijs2005/foodlog/internal/server/config"
	"github.com/dmitrijs2005/foodlog/internal/server/models"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/meals"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/users"
)

const (
	testMealsBucket = "Foodtb_bk"
	testUsersBucket = "usertb_bk"
)

var errDBDown = errors.New("db down")

type fixture struct {
	db    *sql.DB
	rm    repomanager.RepositoryManager
	store *memstore.Store
	cfg   *config.Config
}

func newFixture(t *testing.T, policy attach.Policy) (*fixture, *attach.Orchestrator) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.MealsBucket = testMealsBucket
	cfg.UsersBucket = testUsersBucket

	f := &fixture{
		db:    repotest.OpenSQLite(t),
		rm:    &repomanager.SQLiteRepositoryManager{},
		store: memstore.New(),
		cfg:   cfg,
	}
	start := time.UnixMilli(1709251200000)
	linker := attach.New(f.store,
		attach.WithPolicy(policy),
		attach.WithClock(attach.NewClock(func() time.Time { return start })),
		attach.WithLogger(logging.Nop{}),
	)
	return f, linker
}

func jpegFile() *attach.File {
	data := []byte("jpeg-bytes")
	return &attach.File{Name: "plate.jpg", MediaType: "image/jpeg", Size: int64(len(data)), Data: data}
}

// failingManager wraps a real manager and breaks selected writes.
type failingManager struct {
	repomanager.RepositoryManager
	failMealWrites bool
	failUserWrites bool
}

func (m *failingManager) Meals(db dbx.DBTX) meals.Repository {
	repo := m.RepositoryManager.Meals(db)
	if m.failMealWrites {
		return &failingMeals{Repository: repo}
	}
	return repo
}

func (m *failingManager) Users(db dbx.DBTX) users.Repository {
	repo := m.RepositoryManager.Users(db)
	if m.failUserWrites {
		return &failingUsers{Repository: repo}
	}
	return repo
}

type failingMeals struct{ meals.Repository }

func (*failingMeals) Create(context.Context, *models.Meal) error { return errDBDown }
func (*failingMeals) Update(context.Context, *models.Meal) error { return errDBDown }

type failingUsers struct{ users.Repository }

func (*failingUsers) Create(context.Context, *models.User) error        { return errDBDown }
func (*failingUsers) UpdateProfile(context.Context, *models.User) error { return errDBDown }
