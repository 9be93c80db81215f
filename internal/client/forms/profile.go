package forms

import (
	"context"

	"github.com/dmitrijs2005/foodlog/internal/client/client"
)

// ProfileAPI is the part of client.APIClient a ProfileForm needs.
type ProfileAPI interface {
	UpdateProfile(ctx context.Context, r client.ProfileRequest, avatar *client.Image) (*client.User, string, error)
}

// ProfileForm edits the caller's profile.
type ProfileForm struct {
	imageState
	api ProfileAPI

	Saved    *client.User
	FullName string
	Email    string
	Gender   string
}

// NewProfileForm starts editing user.
func NewProfileForm(api ProfileAPI, user *client.User) *ProfileForm {
	f := &ProfileForm{api: api, Saved: user}
	if user != nil {
		f.FullName, f.Email, f.Gender = user.FullName, user.Email, user.Gender
		f.preview = user.ImageURL
	}
	return f
}

// Submit saves the profile. On failure Saved is left as it was.
func (f *ProfileForm) Submit(ctx context.Context) (*client.User, error) {
	img, err := f.begin()
	if err != nil {
		return nil, err
	}

	user, warning, err := f.api.UpdateProfile(ctx, client.ProfileRequest{
		FullName: f.FullName,
		Email:    f.Email,
		Gender:   f.Gender,
	}, img)
	if err != nil {
		f.end(err, "", "")
		return nil, err
	}

	f.Saved = user
	f.end(nil, user.ImageURL, warning)
	return user, nil
}
