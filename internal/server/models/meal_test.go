package models

import (
	"testing"

	"github.com/dmitrijs2005/foodlog/internal/objectstore"
	"github.com/stretchr/testify/assert"
)

func TestMeal_ImageRef(t *testing.T) {
	m := &Meal{}
	assert.Nil(t, m.ImageRef())

	m.SetImageRef(&objectstore.Ref{URL: "http://x/b/food-images/1.jpg", Path: "food-images/1.jpg"})
	assert.Equal(t, &objectstore.Ref{URL: "http://x/b/food-images/1.jpg", Path: "food-images/1.jpg"}, m.ImageRef())

	m.SetImageRef(nil)
	assert.Nil(t, m.ImageRef())
	assert.Empty(t, m.ImageURL)
	assert.Empty(t, m.ImagePath)
}

func TestUser_ImageRef_LegacyURLOnly(t *testing.T) {
	u := &User{ImageURL: "http://x/usertb_bk/profile-images/2.png"}
	ref := u.ImageRef()
	if assert.NotNil(t, ref) {
		assert.Equal(t, "http://x/usertb_bk/profile-images/2.png", ref.URL)
		assert.Empty(t, ref.Path)
	}
}
