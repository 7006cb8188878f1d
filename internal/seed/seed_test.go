package seed

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/cadence/internal/auth"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
)

func setupStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "seed.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return store
}

func TestRun(t *testing.T) {
	store := setupStore(t)
	now := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)

	result, err := Run(store, now)
	if err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
	if result.Habits != 5 {
		t.Errorf("expected 5 seeded habits, got %d", result.Habits)
	}
	if result.Completions == 0 {
		t.Error("expected seeded completion records")
	}

	user, err := store.GetUser(DemoUsername)
	if err != nil {
		t.Fatalf("demo user missing after seed: %v", err)
	}
	if !auth.VerifyPassword(DemoPassword, user.PasswordHash) {
		t.Error("demo password should verify against the stored hash")
	}

	habits, err := store.GetHabits(user.ID, true)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) != 5 {
		t.Fatalf("expected 5 habits, got %d", len(habits))
	}

	for _, h := range habits {
		for _, c := range h.Completions {
			if c.Timestamp.After(now) {
				t.Errorf("habit %q has a completion after the seed time: %v", h.Name, c.Timestamp)
			}
			if h.Periodicity == models.PeriodicityWeekly && c.Timestamp.Weekday() != time.Monday {
				t.Errorf("weekly habit %q completed on %v, want Monday", h.Name, c.Timestamp.Weekday())
			}
		}
	}
}

func TestRunTwiceFails(t *testing.T) {
	store := setupStore(t)
	now := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)

	if _, err := Run(store, now); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
	if _, err := Run(store, now); err == nil {
		t.Error("expected error when seeding an already-seeded store")
	}
}
