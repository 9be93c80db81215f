package cli

import (
	"context"
	"text/tabwriter"

	"github.com/dmitrijs2005/foodlog/internal/client/client"
	"github.com/dmitrijs2005/foodlog/internal/client/forms"
)

func (a *App) List(ctx context.Context, query string) error {
	meals, err := a.api.ListMeals(ctx, query)
	if err != nil {
		return a.report(err)
	}
	if len(meals) == 0 {
		a.say("No meals found")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = tw.Write([]byte("ID\tDATE\tCATEGORY\tNAME\tIMAGE\n"))
	for _, m := range meals {
		image := "-"
		if m.ImageURL != "" {
			image = m.ImageURL
		}
		_, _ = tw.Write([]byte(m.ID + "\t" + m.Date + "\t" + m.Category + "\t" + m.Name + "\t" + image + "\n"))
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	return a.editMeal(ctx, forms.NewMealForm(a.api, nil))
}

func (a *App) Edit(ctx context.Context, id string) error {
	meal, err := a.api.GetMeal(ctx, id)
	if err != nil {
		return a.report(err)
	}
	return a.editMeal(ctx, forms.NewMealForm(a.api, meal))
}

// editMeal fills f from the prompts and saves it.
func (a *App) editMeal(ctx context.Context, f *forms.MealForm) error {
	var err error
	if f.Name, err = GetTextWithDefault(a.reader, "Meal name", f.Name, a.out); err != nil {
		return a.report(err)
	}
	if f.Category, err = GetTextWithDefault(a.reader, "Category (Breakfast, Lunch, Dinner, Snack)", f.Category, a.out); err != nil {
		return a.report(err)
	}
	if f.Date, err = GetTextWithDefault(a.reader, "Date (YYYY-MM-DD, empty for today)", f.Date, a.out); err != nil {
		return a.report(err)
	}

	if p := f.Preview(); p != "" {
		a.say("Current photo: %s", p)
	}
	img, err := GetImage(a.reader, "Photo", a.out)
	if err != nil {
		return a.report(err)
	}
	if err := f.SelectImage(img); err != nil {
		return a.report(err)
	}

	meal, err := f.Submit(ctx)
	if err != nil {
		return a.report(err)
	}
	if w := f.Warning(); w != "" {
		a.say("Warning: %s", w)
	}
	a.printMeal(meal)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if !Confirm(a.reader, "Delete meal "+id+"?", a.out) {
		a.say("Cancelled")
		return nil
	}
	if err := a.api.DeleteMeal(ctx, id); err != nil {
		return a.report(err)
	}
	a.say("Deleted")
	return nil
}

func (a *App) printMeal(m *client.Meal) {
	a.say("Saved %s: %s (%s, %s)", m.ID, m.Name, m.Category, m.Date)
	if m.ImageURL != "" {
		a.say("Image: %s", m.ImageURL)
	}
}
