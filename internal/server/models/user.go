package models

import (
	"time"

	"github.com/dmitrijs2005/foodlog/internal/objectstore"
)

// Gender values accepted on registration and profile updates.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Gender       string
	ImageURL     string
	ImagePath    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ImageRef returns the avatar reference, or nil when the user has none.
func (u *User) ImageRef() *objectstore.Ref {
	return refOf(u.ImageURL, u.ImagePath)
}

// SetImageRef stores ref on the user; nil clears the avatar.
func (u *User) SetImageRef(ref *objectstore.Ref) {
	u.ImageURL, u.ImagePath = fieldsOf(ref)
}
