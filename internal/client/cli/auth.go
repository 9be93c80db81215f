package cli

import (
	"context"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/dmitrijs2005/foodlog/internal/client/client"
)

func (a *App) Register(ctx context.Context) error {
	var (
		req client.RegisterRequest
		err error
	)

	if req.FullName, err = GetSimpleText(a.reader, "Full name", a.out); err != nil {
		return a.report(err)
	}
	if req.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return a.report(err)
	}
	if req.Password, err = GetPassword(a.out); err != nil {
		return a.report(err)
	}
	if req.Gender, err = GetSimpleText(a.reader, "Gender (Male, Female, Other)", a.out); err != nil {
		return a.report(err)
	}

	avatar, err := GetImage(a.reader, "Profile picture", a.out)
	if err != nil {
		return a.report(err)
	}
	if err := attach.Validate(avatar.File()); err != nil {
		return a.report(err)
	}

	user, warning, err := a.api.Register(ctx, req, avatar)
	if err != nil {
		return a.report(err)
	}
	if warning != "" {
		a.say("Warning: %s", warning)
	}
	a.say("Registered %s, you can login now", user.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.report(err)
	}

	if err := a.api.Login(ctx, email, password); err != nil {
		return a.report(err)
	}

	a.userName = email
	if me, err := a.api.Profile(ctx); err == nil {
		a.userName = me.FullName
	}
	a.say("Login successful")
	return nil
}

func (a *App) Logout(context.Context) error {
	a.api.Logout()
	a.userName = ""
	a.say("Logged out")
	return nil
}
