package cli

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/seed"
)

type SeedCmd struct{}

func (c *SeedCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	result, err := seed.Run(ctx.Store, ctx.Now())
	if err != nil {
		return err
	}

	fmt.Printf("✓ Seeded demo data: %d habits, %d completions\n", result.Habits, result.Completions)
	fmt.Printf("  Log in with username %q and password %q\n", result.Username, seed.DemoPassword)
	return nil
}
