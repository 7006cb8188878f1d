package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/streak"
)

type CheckoffCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Note  string `short:"n" help:"Optional note for this completion."`
	Mood  int    `short:"m" default:"0" help:"Optional mood rating (1-10)."`
	At    string `help:"Completion timestamp (2006-01-02 or RFC3339), defaults to now."`
}

func (c *CheckoffCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	habit, err := findHabit(ctx, user.ID, c.Habit)
	if err != nil {
		return err
	}
	if !habit.Active {
		return fmt.Errorf("habit %q is deactivated, restore it first", habit.Name)
	}

	now := ctx.Now()
	timestamp := now
	if c.At != "" {
		timestamp, err = parseTimestamp(c.At)
		if err != nil {
			return err
		}
	}

	isDue, err := streak.IsDue(habit, timestamp)
	if err != nil {
		return err
	}
	if !isDue {
		return fmt.Errorf("%s is not due on %s (already completed this period, or before the habit existed)",
			habit.Name, timestamp.Format("2006-01-02"))
	}

	completion, err := models.NewCompletion(timestamp, c.Note, c.Mood, now)
	if err != nil {
		return err
	}
	if err := ctx.Store.AddCompletion(habit.ID, completion); err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}

	habit.Completions = append(habit.Completions, completion)
	current, err := streak.Current(habit, now)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Checked off %s", habit.Name)
	if completion.HasMood() {
		fmt.Printf(" (mood %d/%d)", completion.Mood, constants.MoodMax)
	}
	fmt.Printf(", current streak: %d\n", current)
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, use 2006-01-02 or RFC3339", s)
}
