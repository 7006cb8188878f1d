package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/backup"
	"github.com/julianstephens/cadence/internal/storage"
	"github.com/julianstephens/cadence/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	defer ctx.Store.Close()

	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: storage reachable
	if err := checkStorageReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		dbReachable = true
	}

	// Check 2: schema tables (SQLite only)
	if dbReachable {
		if err := checkSchema(ctx); err != nil {
			fmt.Printf("❌ Schema: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema: OK\n")
		}
	}

	// Check 3: backups present
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠️  Backups: WARN\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups: OK\n")
	}

	// Check 4: data consistency
	if dbReachable {
		if err := checkDataConsistency(ctx); err != nil {
			fmt.Printf("❌ Data consistency: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data consistency: OK\n")
		}
	}

	// Check 5: system clock
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ System clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ System clock: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

func checkSchema(ctx *Context) error {
	sqlStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return nil
	}
	for _, table := range storage.ExpectedTables() {
		exists, err := sqlStore.HasTable(table)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("missing table: %s", table)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'cadence backup create'")
	}
	return nil
}

func checkDataConsistency(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.CurrentUser == "" {
		return nil
	}

	user, err := ctx.Store.GetUser(settings.CurrentUser)
	if err != nil {
		return fmt.Errorf("settings reference unknown user %q", settings.CurrentUser)
	}

	habits, err := ctx.Store.GetHabits(user.ID, false)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	result := validation.New().ValidateHabits(habits, ctx.Now())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflicts found, run 'cadence validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
