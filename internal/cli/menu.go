package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/julianstephens/cadence/internal/analytics"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/streak"
)

// MenuCmd runs the guided interactive session: authenticate once, then loop
// on a main menu until the user exits. All actions go through the same store
// operations as the one-shot commands.
type MenuCmd struct{}

func (c *MenuCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	user, err := c.authMenu(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	fmt.Printf("\nWelcome, %s!\n\n", user.Username)
	for {
		var choice string
		err := huh.NewSelect[string]().
			Title("What would you like to do?").
			Options(
				huh.NewOption("Check off a habit", "checkoff"),
				huh.NewOption("List my habits", "list"),
				huh.NewOption("Show what's due today", "due"),
				huh.NewOption("Add a habit", "add"),
				huh.NewOption("Delete a habit", "delete"),
				huh.NewOption("Show statistics", "stats"),
				huh.NewOption("Exit", "exit"),
			).
			Value(&choice).
			Run()
		if err != nil {
			return err
		}

		switch choice {
		case "checkoff":
			err = c.checkoff(ctx, user)
		case "list":
			err = (&HabitListCmd{}).list(ctx, user)
		case "due":
			err = c.due(ctx, user)
		case "add":
			err = c.addHabit(ctx, user)
		case "delete":
			err = c.deleteHabit(ctx, user)
		case "stats":
			err = c.stats(ctx, user)
		case "exit":
			fmt.Println("Goodbye!")
			return nil
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		fmt.Println()
	}
}

// authMenu offers login or registration. Returns nil without error when the
// user chooses to quit.
func (c *MenuCmd) authMenu(ctx *Context) (*models.User, error) {
	for {
		var choice string
		err := huh.NewSelect[string]().
			Title("Welcome to cadence").
			Options(
				huh.NewOption("Log in", "login"),
				huh.NewOption("Create an account", "register"),
				huh.NewOption("Quit", "quit"),
			).
			Value(&choice).
			Run()
		if err != nil {
			return nil, err
		}

		switch choice {
		case "quit":
			return nil, nil
		case "login":
			var username, password string
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Username").Value(&username),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
				),
			)
			if err := form.Run(); err != nil {
				return nil, err
			}
			user, err := authenticate(ctx, username, password)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			return &user, nil
		case "register":
			var username, email, password, confirm string
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Username").Value(&username),
					huh.NewInput().Title("Email").Value(&email),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
					huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&confirm),
				),
			)
			if err := form.Run(); err != nil {
				return nil, err
			}
			user, err := registerUser(ctx, username, email, password, confirm)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Account created, welcome %s!\n", user.Username)
			return &user, nil
		}
	}
}

// pickHabit shows a select over the user's habits and returns the choice.
func (c *MenuCmd) pickHabit(ctx *Context, user *models.User, title string) (*models.Habit, error) {
	habits, err := ctx.Store.GetHabits(user.ID, true)
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet.")
		return nil, nil
	}

	options := make([]huh.Option[string], 0, len(habits))
	for _, h := range habits {
		label := fmt.Sprintf("%s (%s)", h.Name, formatPeriodicity(h.Periodicity))
		options = append(options, huh.NewOption(label, h.ID))
	}

	var id string
	if err := huh.NewSelect[string]().Title(title).Options(options...).Value(&id).Run(); err != nil {
		return nil, err
	}
	for i := range habits {
		if habits[i].ID == id {
			return &habits[i], nil
		}
	}
	return nil, nil
}

func (c *MenuCmd) checkoff(ctx *Context, user *models.User) error {
	habit, err := c.pickHabit(ctx, user, "Which habit did you complete?")
	if err != nil || habit == nil {
		return err
	}

	var note, moodStr string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Note (optional)").Value(&note),
			huh.NewInput().Title("Mood 1-10 (optional)").Value(&moodStr),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	mood := 0
	if moodStr != "" {
		if _, err := fmt.Sscanf(moodStr, "%d", &mood); err != nil {
			return fmt.Errorf("invalid mood %q", moodStr)
		}
	}

	now := ctx.Now()
	isDue, err := streak.IsDue(*habit, now)
	if err != nil {
		return err
	}
	if !isDue {
		fmt.Printf("%s is already done for this period.\n", habit.Name)
		return nil
	}

	completion, err := models.NewCompletion(now, note, mood, now)
	if err != nil {
		return err
	}
	if err := ctx.Store.AddCompletion(habit.ID, completion); err != nil {
		return err
	}

	habit.Completions = append(habit.Completions, completion)
	current, err := streak.Current(*habit, now)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Checked off %s, current streak: %d\n", habit.Name, current)
	return nil
}

func (c *MenuCmd) due(ctx *Context, user *models.User) error {
	habits, err := ctx.Store.GetHabits(user.ID, true)
	if err != nil {
		return err
	}

	now := ctx.Now()
	var count int
	for _, h := range habits {
		isDue, err := streak.IsDue(h, now)
		if err != nil {
			return err
		}
		if isDue {
			count++
			fmt.Printf("  ○ %s (%s)\n", h.Name, formatPeriodicity(h.Periodicity))
		}
	}
	if count == 0 {
		fmt.Println("Nothing due. All caught up!")
	}
	return nil
}

func (c *MenuCmd) addHabit(ctx *Context, user *models.User) error {
	var name string
	periodicity := models.PeriodicityDaily
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit name").Value(&name),
			huh.NewSelect[models.Periodicity]().
				Title("How often?").
				Options(
					huh.NewOption("Daily", models.PeriodicityDaily),
					huh.NewOption("Weekly", models.PeriodicityWeekly),
				).
				Value(&periodicity),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cmd := &HabitAddCmd{Name: name, Periodicity: string(periodicity)}
	return cmd.create(ctx, user)
}

func (c *MenuCmd) deleteHabit(ctx *Context, user *models.User) error {
	habit, err := c.pickHabit(ctx, user, "Which habit should be deactivated?")
	if err != nil || habit == nil {
		return err
	}

	var confirmed bool
	err = huh.NewConfirm().
		Title(fmt.Sprintf("Deactivate %q? History is kept.", habit.Name)).
		Value(&confirmed).
		Run()
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	if err := ctx.Store.DeactivateHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deactivated habit: %s\n", habit.Name)
	return nil
}

func (c *MenuCmd) stats(ctx *Context, user *models.User) error {
	habits, err := ctx.Store.GetHabits(user.ID, true)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits to analyze.")
		return nil
	}

	now := ctx.Now()
	summaries, err := analytics.Summaries(habits, now)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("  %-24s current: %-3d longest: %-3d done: %d\n",
			s.HabitName, s.CurrentStreak, s.LongestStreak, s.Completions)
	}

	longest, err := analytics.BestLongestStreak(habits)
	if err != nil {
		return err
	}
	if longest.Streak > 0 {
		fmt.Printf("\n  Longest streak ever: %s (%d)\n", longest.HabitName, longest.Streak)
	}
	return nil
}
