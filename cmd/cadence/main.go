package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/cadence/cadence.db"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize cadence storage."`
	Menu     cli.MenuCmd     `cmd:"" help:"Launch the guided interactive session." default:"1"`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the dashboard TUI."`
	Register cli.RegisterCmd `cmd:"" help:"Create an account."`
	Login    cli.LoginCmd    `cmd:"" help:"Log in."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Log out."`
	Whoami   cli.WhoamiCmd   `cmd:"" help:"Show the logged-in user."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Checkoff cli.CheckoffCmd `cmd:"" help:"Record a habit completion."`
	Due      cli.DueCmd      `cmd:"" help:"Show habits due on a date."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show streaks and analytics."`
	Log      cli.LogCmd      `cmd:"" help:"Show recent completions for a habit."`
	Seed     cli.SeedCmd     `cmd:"" help:"Populate demo data."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run diagnostics."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored data for conflicts."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cadence"),
		kong.Description("Habit tracker with calendar-aware streaks"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
		Now:   time.Now,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
