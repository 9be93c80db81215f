package forms

import (
	"context"

	"github.com/dmitrijs2005/foodlog/internal/client/client"
)

// MealAPI is the part of client.APIClient a MealForm needs.
type MealAPI interface {
	CreateMeal(ctx context.Context, r client.MealRequest, photo *client.Image) (*client.Meal, string, error)
	UpdateMeal(ctx context.Context, id string, r client.MealRequest, photo *client.Image) (*client.Meal, string, error)
}

// MealForm edits one meal, or creates one when constructed without a meal.
type MealForm struct {
	imageState
	api MealAPI

	// Saved is the last state acknowledged by the server.
	Saved    *client.Meal
	Name     string
	Category string
	Date     string
}

// NewMealForm starts editing meal, or a new meal when it is nil.
func NewMealForm(api MealAPI, meal *client.Meal) *MealForm {
	f := &MealForm{api: api, Saved: meal}
	if meal != nil {
		f.Name, f.Category, f.Date = meal.Name, meal.Category, meal.Date
		f.preview = meal.ImageURL
	}
	return f
}

// Submit saves the form. When the call fails Saved and the staged image
// are left as they were so the user can retry.
func (f *MealForm) Submit(ctx context.Context) (*client.Meal, error) {
	img, err := f.begin()
	if err != nil {
		return nil, err
	}

	req := client.MealRequest{Name: f.Name, Category: f.Category, Date: f.Date}

	var (
		meal    *client.Meal
		warning string
	)
	if f.Saved == nil {
		meal, warning, err = f.api.CreateMeal(ctx, req, img)
	} else {
		meal, warning, err = f.api.UpdateMeal(ctx, f.Saved.ID, req, img)
	}
	if err != nil {
		f.end(err, "", "")
		return nil, err
	}

	f.Saved = meal
	f.end(nil, meal.ImageURL, warning)
	return meal, nil
}
