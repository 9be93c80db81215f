package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/foodlog/internal/client/client"
	"github.com/dmitrijs2005/foodlog/internal/client/config"
)

// API is the part of client.APIClient the CLI drives.
type API interface {
	Register(ctx context.Context, r client.RegisterRequest, avatar *client.Image) (*client.User, string, error)
	Login(ctx context.Context, email, password string) error
	Logout()
	LoggedIn() bool
	Profile(ctx context.Context) (*client.User, error)
	UpdateProfile(ctx context.Context, r client.ProfileRequest, avatar *client.Image) (*client.User, string, error)
	ListMeals(ctx context.Context, query string) ([]client.Meal, error)
	GetMeal(ctx context.Context, id string) (*client.Meal, error)
	CreateMeal(ctx context.Context, r client.MealRequest, photo *client.Image) (*client.Meal, string, error)
	UpdateMeal(ctx context.Context, id string, r client.MealRequest, photo *client.Image) (*client.Meal, string, error)
	DeleteMeal(ctx context.Context, id string) error
}

// App is the interactive terminal client.
type App struct {
	config   *config.Config
	api      API
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

// NewApp wires an App to the API at c.ServerURL.
func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    client.NewAPIClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run starts the REPL and returns when the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to foodlog (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) say(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// report prints err and hands it back so command handlers can return it.
func (a *App) report(err error) error {
	a.say("Error: %s", err.Error())
	return err
}
