package refreshtokens

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/common"
	"github.com/dmitrijs2005/foodlog/internal/dbx"
	"github.com/dmitrijs2005/foodlog/internal/server/models"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := dbx.Rebind(repotest.OpenSQLite(t))

	u := &models.User{FullName: "A", Email: "a@example.com", PasswordHash: "h", Gender: "Other"}
	require.NoError(t, users.NewSQLRepository(db).Create(ctx, u))

	repo := NewSQLRepository(db)
	require.NoError(t, repo.Create(ctx, u.ID, "tok", time.Hour))

	got, err := repo.Find(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.True(t, got.Expires.After(time.Now()))

	require.NoError(t, repo.Delete(ctx, "tok"))
	require.NoError(t, repo.Delete(ctx, "tok"))

	_, err = repo.Find(ctx, "tok")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_UnknownUserRejected(t *testing.T) {
	repo := NewSQLRepository(dbx.Rebind(repotest.OpenSQLite(t)))

	err := repo.Create(context.Background(), "no-such-user", "tok", time.Hour)
	require.Error(t, err)
}
