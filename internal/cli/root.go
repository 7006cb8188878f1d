package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/cadence/internal/backup"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
)

type Context struct {
	Store storage.Provider
	// Now supplies the reference time for due/streak evaluation. Commands
	// never read the clock directly so tests can pin it.
	Now func() time.Time
}

// CurrentUser resolves the logged-in user from settings. Commands that need
// an account call this after loading the store.
func (ctx *Context) CurrentUser() (models.User, error) {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return models.User{}, err
	}
	if settings.CurrentUser == "" {
		return models.User{}, fmt.Errorf("not logged in, run 'cadence login' first")
	}
	return ctx.Store.GetUser(settings.CurrentUser)
}

// PerformAutomaticBackup takes a best-effort backup before long-running
// sessions. SQLite only; the JSON backend is skipped.
func (ctx *Context) PerformAutomaticBackup() {
	path := ctx.Store.GetConfigPath()
	if filepath.Ext(path) == ".json" {
		return
	}
	mgr := backup.NewManager(path)
	if _, err := mgr.CreateBackup(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: automatic backup failed: %v\n", err)
	}
}

// findHabit looks a habit up by id or (case-insensitive) name among the
// user's habits, inactive ones included.
func findHabit(ctx *Context, userID, ref string) (models.Habit, error) {
	habits, err := ctx.Store.GetHabits(userID, false)
	if err != nil {
		return models.Habit{}, err
	}

	for _, h := range habits {
		if h.ID == ref || strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("no habit matching %q", ref)
}

func formatPeriodicity(p models.Periodicity) string {
	switch p {
	case models.PeriodicityDaily:
		return "daily"
	case models.PeriodicityWeekly:
		return "weekly"
	default:
		return "unknown"
	}
}

func formatLastCompletion(last *time.Time) string {
	if last == nil {
		return "never"
	}
	return last.Format("2006-01-02")
}
