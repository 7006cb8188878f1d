package cli

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/constants"
)

type LogCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Limit int    `short:"l" default:"10" help:"Number of completions to show (0 for all)."`
}

func (c *LogCmd) Run(ctx *Context) error {
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

	completions, err := ctx.Store.GetCompletions(habit.ID, c.Limit)
	if err != nil {
		return err
	}

	if len(completions) == 0 {
		fmt.Printf("No completions for %s yet.\n", habit.Name)
		return nil
	}

	fmt.Printf("Recent completions for %s:\n\n", habit.Name)
	for _, comp := range completions {
		line := fmt.Sprintf("  ✓ %s", comp.Timestamp.Format("2006-01-02 15:04"))
		if comp.HasMood() {
			line += fmt.Sprintf("  mood %d/%d", comp.Mood, constants.MoodMax)
		}
		if comp.Note != "" {
			line += fmt.Sprintf("  %q", comp.Note)
		}
		fmt.Println(line)
	}
	return nil
}
