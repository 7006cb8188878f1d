package cli

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	defer ctx.Store.Close()

	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits(user.ID, false)
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	fmt.Println("Validating habits...")
	result := validation.New().ValidateHabits(habits, ctx.Now())

	fmt.Println()
	fmt.Println(result.FormatReport())

	if result.HasConflicts() {
		return fmt.Errorf("validation found %d conflicts", len(result.Conflicts))
	}
	return nil
}
