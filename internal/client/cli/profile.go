package cli

import (
	"context"

	"github.com/dmitrijs2005/foodlog/internal/client/forms"
)

// Profile shows the caller's profile and optionally edits it.
func (a *App) Profile(ctx context.Context) error {
	me, err := a.api.Profile(ctx)
	if err != nil {
		return a.report(err)
	}

	a.say("Name:   %s", me.FullName)
	a.say("Email:  %s", me.Email)
	a.say("Gender: %s", me.Gender)
	if me.ImageURL != "" {
		a.say("Avatar: %s", me.ImageURL)
	}

	if !Confirm(a.reader, "Edit profile?", a.out) {
		return nil
	}

	f := forms.NewProfileForm(a.api, me)
	if f.FullName, err = GetTextWithDefault(a.reader, "Full name", f.FullName, a.out); err != nil {
		return a.report(err)
	}
	if f.Email, err = GetTextWithDefault(a.reader, "Email", f.Email, a.out); err != nil {
		return a.report(err)
	}
	if f.Gender, err = GetTextWithDefault(a.reader, "Gender (Male, Female, Other)", f.Gender, a.out); err != nil {
		return a.report(err)
	}

	img, err := GetImage(a.reader, "New profile picture", a.out)
	if err != nil {
		return a.report(err)
	}
	if err := f.SelectImage(img); err != nil {
		return a.report(err)
	}

	user, err := f.Submit(ctx)
	if err != nil {
		return a.report(err)
	}
	if w := f.Warning(); w != "" {
		a.say("Warning: %s", w)
	}
	a.userName = user.FullName
	a.say("Profile updated")
	return nil
}
