package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/julianstephens/cadence/internal/auth"
	"github.com/julianstephens/cadence/internal/models"
)

type RegisterCmd struct {
	Username string `arg:"" optional:"" help:"Username for the new account."`
	Email    string `short:"e" help:"Email address."`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	username := c.Username
	email := c.Email
	var password, confirm string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&username),
			huh.NewInput().Title("Email").Value(&email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	user, err := registerUser(ctx, username, email, password, confirm)
	if err != nil {
		return err
	}

	fmt.Printf("Account created, welcome %s!\n", user.Username)
	return loginAs(ctx, user.Username)
}

// registerUser validates input and writes the new account. Shared by the
// register command and the interactive menu.
func registerUser(ctx *Context, username, email, password, confirm string) (models.User, error) {
	if err := auth.ValidateUsername(username); err != nil {
		return models.User{}, err
	}
	if email == "" {
		return models.User{}, fmt.Errorf("email is required")
	}
	if password != confirm {
		return models.User{}, fmt.Errorf("passwords do not match")
	}
	if err := auth.ValidatePassword(password); err != nil {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    ctx.Now(),
	}
	if err := ctx.Store.CreateUser(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

type LoginCmd struct {
	Username string `arg:"" optional:"" help:"Username to log in as."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	username := c.Username
	var password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&username),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if _, err := authenticate(ctx, username, password); err != nil {
		return err
	}
	if err := loginAs(ctx, username); err != nil {
		return err
	}

	fmt.Printf("Welcome back, %s!\n", username)
	return nil
}

// authenticate checks credentials without revealing whether the username or
// the password was wrong.
func authenticate(ctx *Context, username, password string) (models.User, error) {
	user, err := ctx.Store.GetUser(username)
	if err != nil || !auth.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, fmt.Errorf("invalid username or password")
	}
	return user, nil
}

func loginAs(ctx *Context, username string) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	settings.CurrentUser = username
	return ctx.Store.SaveSettings(settings)
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.CurrentUser == "" {
		fmt.Println("Not logged in.")
		return nil
	}

	settings.CurrentUser = ""
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s), member since %s\n", user.Username, user.Email, user.CreatedAt.Format("2006-01-02"))
	return nil
}
