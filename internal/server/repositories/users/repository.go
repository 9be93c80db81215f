// Package users stores user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/foodlog/internal/server/models"
)

type Repository interface {
	// Create inserts user, assigning ID and timestamps when unset. A taken
	// email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateProfile writes the editable profile fields: name, email, gender
	// and avatar. A taken email yields common.ErrorAlreadyExists.
	UpdateProfile(ctx context.Context, user *models.User) error
}
