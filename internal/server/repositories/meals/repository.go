// Package meals stores meal log entries. Every operation is scoped to the
// owning user; a meal owned by someone else is reported as not found.
package meals

import (
	"context"

	"github.com/dmitrijs2005/foodlog/internal/server/models"
)

type Repository interface {
	// Create inserts meal, assigning ID and timestamps when unset.
	Create(ctx context.Context, meal *models.Meal) error
	// Update rewrites name, category, date and image of meal.ID for meal.UserID.
	Update(ctx context.Context, meal *models.Meal) error
	GetByID(ctx context.Context, userID, id string) (*models.Meal, error)
	Delete(ctx context.Context, userID, id string) error
	// List returns the user's meals, newest date first.
	List(ctx context.Context, userID string, filter models.MealFilter) ([]*models.Meal, error)
}
