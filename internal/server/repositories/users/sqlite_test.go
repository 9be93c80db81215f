package users

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/common"
	"github.com/dmitrijs2005/foodlog/internal/dbx"
	"github.com/dmitrijs2005/foodlog/internal/server/models"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLRepository(dbx.Rebind(repotest.OpenSQLite(t)))

	u := &models.User{FullName: "Alice", Email: "alice@example.com", PasswordHash: "h", Gender: "Female"}
	require.NoError(t, repo.Create(ctx, u))

	err := repo.Create(ctx, &models.User{FullName: "Other", Email: "alice@example.com", PasswordHash: "h", Gender: "Other"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Nil(t, got.ImageRef())
	assert.WithinDuration(t, u.CreatedAt, got.CreatedAt, time.Second)

	got.FullName = "Alice B"
	got.ImageURL = "http://cdn/usertb_bk/profile-images/5.png"
	got.ImagePath = "profile-images/5.png"
	require.NoError(t, repo.UpdateProfile(ctx, got))

	again, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", again.FullName)
	assert.Equal(t, "profile-images/5.png", again.ImagePath)
	assert.Equal(t, "alice@example.com", again.Email)

	bob := &models.User{FullName: "Bob", Email: "bob@example.com", PasswordHash: "h", Gender: "Male"}
	require.NoError(t, repo.Create(ctx, bob))
	bob.Email = "alice@example.com"
	assert.ErrorIs(t, repo.UpdateProfile(ctx, bob), common.ErrorAlreadyExists)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
