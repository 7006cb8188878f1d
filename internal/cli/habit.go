package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/streak"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List your habits."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Deactivate a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Reactivate a previously deleted habit."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Periodicity string `short:"p" default:"daily" help:"How often the habit is due (daily|weekly)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	return c.create(ctx, &user)
}

func (c *HabitAddCmd) create(ctx *Context, user *models.User) error {
	periodicity, err := models.ParsePeriodicity(c.Periodicity)
	if err != nil {
		return err
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Name:        c.Name,
		Periodicity: periodicity,
		CreatedAt:   ctx.Now(),
		Active:      true,
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}

	fmt.Printf("✓ Added %s habit: %s\n", formatPeriodicity(periodicity), habit.Name)
	return nil
}

type HabitListCmd struct {
	All         bool   `short:"a" help:"Include deactivated habits."`
	Periodicity string `short:"p" help:"Only show habits with this cadence (daily|weekly)."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	return c.list(ctx, &user)
}

func (c *HabitListCmd) list(ctx *Context, user *models.User) error {
	habits, err := ctx.Store.GetHabits(user.ID, !c.All)
	if err != nil {
		return err
	}

	if c.Periodicity != "" {
		p, err := models.ParsePeriodicity(c.Periodicity)
		if err != nil {
			return err
		}
		filtered := habits[:0]
		for _, h := range habits {
			if h.Periodicity == p {
				filtered = append(filtered, h)
			}
		}
		habits = filtered
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'cadence habit add <name>'.")
		return nil
	}

	now := ctx.Now()
	fmt.Printf("Habits for %s:\n\n", user.Username)
	for _, h := range habits {
		current, err := streak.Current(h, now)
		if err != nil {
			return err
		}

		marker := " "
		if !h.Active {
			marker = "✗"
		}
		fmt.Printf("%s %-24s %-7s streak: %-3d last: %s\n",
			marker, h.Name, formatPeriodicity(h.Periodicity), current,
			formatLastCompletion(h.LastCompletion()))
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
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
	if err := ctx.Store.DeactivateHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("✓ Deactivated habit: %s (history kept, restore with 'cadence habit restore')\n", habit.Name)
	return nil
}

type HabitRestoreCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
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
	if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("✓ Restored habit: %s\n", habit.Name)
	return nil
}
