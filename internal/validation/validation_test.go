package validation

import (
	"testing"
	"time"

	"github.com/julianstephens/cadence/internal/models"
)

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestValidateHabits_DuplicateNames(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", UserID: "u1", Name: "Habit A", Periodicity: models.PeriodicityDaily, CreatedAt: now, Active: true},
		{ID: "2", UserID: "u1", Name: "Habit B", Periodicity: models.PeriodicityDaily, CreatedAt: now, Active: true},
		{ID: "3", UserID: "u1", Name: "Habit A", Periodicity: models.PeriodicityDaily, CreatedAt: now, Active: true}, // Duplicate
	}

	result := validator.ValidateHabits(habits, now)

	if !result.HasConflicts() {
		t.Error("Expected to detect duplicate habit names")
	}

	found := false
	for _, conflict := range result.Conflicts {
		if conflict.Type == ConflictDuplicateHabitName {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected ConflictDuplicateHabitName conflict type")
	}
}

func TestValidateHabits_SameNameDifferentUsersOK(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", UserID: "u1", Name: "Habit A", Periodicity: models.PeriodicityDaily, CreatedAt: now, Active: true},
		{ID: "2", UserID: "u2", Name: "Habit A", Periodicity: models.PeriodicityDaily, CreatedAt: now, Active: true},
	}

	result := validator.ValidateHabits(habits, now)
	if result.HasConflicts() {
		t.Errorf("Habit names only need to be unique per user, got: %s", result.FormatReport())
	}
}

func TestValidateHabits_InvalidPeriodicity(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{ID: "1", UserID: "u1", Name: "Habit A", Periodicity: "monthly", CreatedAt: now, Active: true},
	}

	result := validator.ValidateHabits(habits, now)

	found := false
	for _, conflict := range result.Conflicts {
		if conflict.Type == ConflictInvalidPeriodicity {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected ConflictInvalidPeriodicity conflict type")
	}
}

func TestValidateHabits_CompletionIssues(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{
			ID: "1", UserID: "u1", Name: "Habit A",
			Periodicity: models.PeriodicityDaily,
			CreatedAt:   now,
			Active:      true,
			Completions: []models.Completion{
				{Timestamp: now.AddDate(0, 0, 1)},  // future
				{Timestamp: now.AddDate(0, 0, -30)}, // before creation
				{Timestamp: now, Mood: 42},          // out-of-range mood
			},
		},
	}

	result := validator.ValidateHabits(habits, now)

	want := map[ConflictType]bool{
		ConflictFutureCompletion:         false,
		ConflictCompletionBeforeCreation: false,
		ConflictInvalidMood:              false,
	}
	for _, conflict := range result.Conflicts {
		if _, ok := want[conflict.Type]; ok {
			want[conflict.Type] = true
		}
	}
	for typ, found := range want {
		if !found {
			t.Errorf("Expected %s conflict type", typ)
		}
	}
}

func TestValidateHabits_CompletionOnCreationDayNonUTC(t *testing.T) {
	validator := New()
	loc := time.FixedZone("UTC+10", 10*60*60)

	// Created late in the local evening; a completion earlier the same local
	// calendar day is fine even though it precedes the creation instant.
	created := time.Date(2024, time.June, 1, 22, 0, 0, 0, loc)
	completed := time.Date(2024, time.June, 1, 8, 0, 0, 0, loc)

	habits := []models.Habit{
		{
			ID: "1", UserID: "u1", Name: "Habit A",
			Periodicity: models.PeriodicityDaily, CreatedAt: created, Active: true,
			Completions: []models.Completion{{Timestamp: completed}},
		},
	}

	result := validator.ValidateHabits(habits, now.AddDate(0, 0, 7))
	for _, conflict := range result.Conflicts {
		if conflict.Type == ConflictCompletionBeforeCreation {
			t.Errorf("Completion on the creation day flagged as before creation: %s", conflict.Message)
		}
	}

	// The previous local day is still a conflict.
	habits[0].Completions = []models.Completion{
		{Timestamp: time.Date(2024, time.May, 31, 23, 0, 0, 0, loc)},
	}
	result = validator.ValidateHabits(habits, now.AddDate(0, 0, 7))
	found := false
	for _, conflict := range result.Conflicts {
		if conflict.Type == ConflictCompletionBeforeCreation {
			found = true
		}
	}
	if !found {
		t.Error("Expected ConflictCompletionBeforeCreation for the previous calendar day")
	}
}

func TestValidateHabits_CleanData(t *testing.T) {
	validator := New()

	habits := []models.Habit{
		{
			ID: "1", UserID: "u1", Name: "Habit A",
			Periodicity: models.PeriodicityWeekly,
			CreatedAt:   now.AddDate(0, 0, -14),
			Active:      true,
			Completions: []models.Completion{
				{Timestamp: now.AddDate(0, 0, -7), Note: "ok", Mood: 8},
				{Timestamp: now.AddDate(0, 0, -1)},
			},
		},
	}

	result := validator.ValidateHabits(habits, now)
	if result.HasConflicts() {
		t.Errorf("Expected no conflicts for clean data, got: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts found." {
		t.Errorf("Unexpected report for clean data: %q", result.FormatReport())
	}
}
