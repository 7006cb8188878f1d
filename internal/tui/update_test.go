package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
)

var testNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func setupTestModel(t *testing.T) (*Model, storage.Provider, models.Habit) {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "test.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	user := models.User{
		ID:        "test-user-id",
		Username:  "tester",
		Email:     "tester@example.com",
		CreatedAt: testNow.AddDate(0, -1, 0),
	}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	habit := models.Habit{
		ID:          "habit-1",
		UserID:      user.ID,
		Name:        "Meditate",
		Periodicity: models.PeriodicityDaily,
		CreatedAt:   testNow.AddDate(0, 0, -7),
		Active:      true,
	}
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	m := NewModel(store, user, func() time.Time { return testNow })
	return &m, store, habit
}

func TestCheckoffRecordsCompletion(t *testing.T) {
	m, store, habit := setupTestModel(t)

	m.checkoff(habit.ID)
	if m.lastErr != nil {
		t.Fatalf("checkoff failed: %v", m.lastErr)
	}
	if !strings.Contains(m.status, "Checked off") {
		t.Errorf("expected checked-off status, got %q", m.status)
	}

	completions, err := store.GetCompletions(habit.ID, 0)
	if err != nil {
		t.Fatalf("failed to get completions: %v", err)
	}
	if len(completions) != 1 {
		t.Errorf("expected one completion, got %d", len(completions))
	}
}

func TestCheckoffRefusesSamePeriodDuplicate(t *testing.T) {
	m, store, habit := setupTestModel(t)

	m.checkoff(habit.ID)
	if m.lastErr != nil {
		t.Fatalf("first checkoff failed: %v", m.lastErr)
	}

	m.checkoff(habit.ID)
	if m.lastErr != nil {
		t.Fatalf("second checkoff errored instead of declining: %v", m.lastErr)
	}
	if !strings.Contains(m.status, "already done") {
		t.Errorf("expected already-done status, got %q", m.status)
	}

	completions, err := store.GetCompletions(habit.ID, 0)
	if err != nil {
		t.Fatalf("failed to get completions: %v", err)
	}
	if len(completions) != 1 {
		t.Errorf("expected a single stored completion, got %d", len(completions))
	}
}
