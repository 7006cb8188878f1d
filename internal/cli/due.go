package cli

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/streak"
)

type DueCmd struct {
	Date string `arg:"" optional:"" help:"Date to evaluate (2006-01-02), defaults to today."`
}

func (c *DueCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	target := ctx.Now()
	if c.Date != "" {
		target, err = parseTimestamp(c.Date)
		if err != nil {
			return err
		}
	}

	habits, err := ctx.Store.GetHabits(user.ID, true)
	if err != nil {
		return err
	}

	var due, done int
	fmt.Printf("Due on %s:\n\n", target.Format("2006-01-02"))
	for _, h := range habits {
		isDue, err := streak.IsDue(h, target)
		if err != nil {
			return err
		}
		if isDue {
			due++
			fmt.Printf("  ○ %s (%s)\n", h.Name, formatPeriodicity(h.Periodicity))
		} else if !h.CreatedAt.After(target) {
			done++
		}
	}

	if due == 0 {
		fmt.Println("  Nothing due. All caught up!")
	} else {
		fmt.Printf("\n%d due, %d already done.\n", due, done)
	}
	return nil
}
