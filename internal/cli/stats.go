package cli

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/analytics"
	"github.com/julianstephens/cadence/internal/models"
)

type StatsCmd struct {
	Periodicity string `short:"p" help:"Restrict to one cadence (daily|weekly)."`
	Inactivity  int    `help:"Months without completions before a habit counts as inactive (0 uses the stored setting)."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits(user.ID, true)
	if err != nil {
		return err
	}

	if c.Periodicity != "" {
		p, err := models.ParsePeriodicity(c.Periodicity)
		if err != nil {
			return err
		}
		habits = analytics.FilterByPeriodicity(habits, p)
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

	fmt.Printf("Stats for %s:\n\n", user.Username)
	fmt.Printf("  %-24s %-7s %8s %8s %6s  %s\n", "HABIT", "CADENCE", "CURRENT", "LONGEST", "DONE", "LAST")
	for _, s := range summaries {
		fmt.Printf("  %-24s %-7s %8d %8d %6d  %s\n",
			s.HabitName, formatPeriodicity(s.Periodicity), s.CurrentStreak,
			s.LongestStreak, s.Completions, formatLastCompletion(s.LastCompletion))
	}

	longest, err := analytics.BestLongestStreak(habits)
	if err != nil {
		return err
	}
	current, err := analytics.BestCurrentStreak(habits, now)
	if err != nil {
		return err
	}

	fmt.Println()
	if longest.Streak > 0 {
		fmt.Printf("  Longest streak ever: %s (%d)\n", longest.HabitName, longest.Streak)
	}
	if current.Streak > 0 {
		fmt.Printf("  Best current streak: %s (%d)\n", current.HabitName, current.Streak)
	}

	months := c.Inactivity
	if months <= 0 {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		months = settings.InactivityMonths
	}

	inactive := analytics.InactiveHabits(habits, months, now)
	if len(inactive) > 0 {
		fmt.Printf("\n  Struggling (no completions in %d months):\n", months)
		for _, h := range inactive {
			fmt.Printf("    ✗ %s\n", h.Name)
		}
	}
	return nil
}
