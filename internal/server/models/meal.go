package models

import (
	"time"

	"github.com/dmitrijs2005/foodlog/internal/objectstore"
)

// Meal categories.
const (
	CategoryBreakfast = "Breakfast"
	CategoryLunch     = "Lunch"
	CategoryDinner    = "Dinner"
	CategorySnack     = "Snack"
)

// Meal is one logged meal. Date is a calendar date in common.DateLayout.
type Meal struct {
	ID        string
	UserID    string
	Name      string
	Category  string
	Date      string
	ImageURL  string
	ImagePath string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Meal) ImageRef() *objectstore.Ref {
	return refOf(m.ImageURL, m.ImagePath)
}

func (m *Meal) SetImageRef(ref *objectstore.Ref) {
	m.ImageURL, m.ImagePath = fieldsOf(ref)
}

// MealFilter narrows a meal listing. Query is matched case-insensitively as
// a substring of the name, the category or the date. From and To bound the
// date inclusively; empty values are ignored.
type MealFilter struct {
	Query string
	From  string
	To    string
}

func refOf(url, path string) *objectstore.Ref {
	if url == "" && path == "" {
		return nil
	}
	return &objectstore.Ref{URL: url, Path: path}
}

func fieldsOf(ref *objectstore.Ref) (string, string) {
	if ref == nil {
		return "", ""
	}
	return ref.URL, ref.Path
}
