package streak

import (
	"testing"
	"time"

	"github.com/julianstephens/cadence/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func dailyHabit(created time.Time, completions ...time.Time) models.Habit {
	return buildHabit(models.PeriodicityDaily, created, completions)
}

func weeklyHabit(created time.Time, completions ...time.Time) models.Habit {
	return buildHabit(models.PeriodicityWeekly, created, completions)
}

func buildHabit(p models.Periodicity, created time.Time, completions []time.Time) models.Habit {
	h := models.Habit{
		ID:          "habit-1",
		Name:        "Test Habit",
		Periodicity: p,
		CreatedAt:   created,
		Active:      true,
	}
	for _, ts := range completions {
		h.Completions = append(h.Completions, models.Completion{Timestamp: ts})
	}
	return h
}

func TestIsDue_DailyScenario(t *testing.T) {
	// Created 2024-01-01, completed 2024-01-02.
	h := dailyHabit(date(2024, time.January, 1), date(2024, time.January, 2))

	due, err := IsDue(h, date(2024, time.January, 3))
	if err != nil {
		t.Fatalf("IsDue failed: %v", err)
	}
	if !due {
		t.Error("expected habit to be due on 2024-01-03")
	}

	due, err = IsDue(h, date(2024, time.January, 2))
	if err != nil {
		t.Fatalf("IsDue failed: %v", err)
	}
	if due {
		t.Error("expected habit not to be due on its completion day 2024-01-02")
	}
}

func TestIsDue_BeforeCreation(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1))

	due, err := IsDue(h, date(2023, time.December, 31))
	if err != nil {
		t.Fatalf("IsDue failed: %v", err)
	}
	if due {
		t.Error("habit should have no due obligation before its creation date")
	}
}

func TestIsDue_InactiveNeverDue(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1))
	h.Active = false

	due, err := IsDue(h, date(2024, time.January, 5))
	if err != nil {
		t.Fatalf("IsDue failed: %v", err)
	}
	if due {
		t.Error("inactive habit must never be due")
	}
}

func TestIsDue_WeeklyCompletedThisWeek(t *testing.T) {
	// 2024-01-01 is a Monday; both dates fall in ISO week 1 of 2024.
	h := weeklyHabit(date(2024, time.January, 1), date(2024, time.January, 2))

	due, err := IsDue(h, date(2024, time.January, 5))
	if err != nil {
		t.Fatalf("IsDue failed: %v", err)
	}
	if due {
		t.Error("weekly habit completed this week should not be due")
	}
}

func TestIsDue_WeeklyYearBoundaryOrdering(t *testing.T) {
	// Habit created in ISO week 52 of 2023. Week 1 of 2024 is strictly later;
	// naive week-number comparison (1 < 52) would get this wrong.
	h := weeklyHabit(date(2023, time.December, 27))

	due, err := IsDue(h, date(2024, time.January, 2))
	if err != nil {
		t.Fatalf("IsDue failed: %v", err)
	}
	if !due {
		t.Error("expected habit created in week 52/2023 to be due in week 1/2024")
	}
}

func TestIsDue_UnsupportedPeriodicity(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1))
	h.Periodicity = "monthly"

	if _, err := IsDue(h, date(2024, time.January, 2)); err == nil {
		t.Error("expected error for unsupported periodicity")
	}
}

func TestCurrent_NoCompletions(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1))

	got, err := Current(h, date(2024, time.January, 10))
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected streak 0 with no completions, got %d", got)
	}
}

func TestCurrent_DailyConsecutiveRun(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1),
		date(2024, time.January, 3),
		date(2024, time.January, 4),
		date(2024, time.January, 5),
	)

	got, err := Current(h, date(2024, time.January, 5))
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if got != 3 {
		t.Errorf("expected current streak 3, got %d", got)
	}
}

func TestCurrent_DailyGapAtReferenceDate(t *testing.T) {
	// Completed yesterday but not on the reference date itself.
	h := dailyHabit(date(2024, time.January, 1),
		date(2024, time.January, 3),
		date(2024, time.January, 4),
	)

	got, err := Current(h, date(2024, time.January, 5))
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected streak 0 when reference day has no completion, got %d", got)
	}
}

func TestCurrent_DailyDuplicatesCountOnce(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1),
		date(2024, time.January, 4),
		time.Date(2024, time.January, 5, 8, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 5, 20, 0, 0, 0, time.UTC),
	)

	got, err := Current(h, date(2024, time.January, 5))
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if got != 2 {
		t.Errorf("expected streak 2 with same-day duplicates, got %d", got)
	}
}

func TestCurrent_IgnoresCompletionsAfterReference(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1),
		date(2024, time.January, 4),
		date(2024, time.January, 5),
		date(2024, time.January, 9),
	)

	got, err := Current(h, date(2024, time.January, 5))
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if got != 2 {
		t.Errorf("expected streak 2 ignoring later completions, got %d", got)
	}
}

func TestCurrent_WeeklyYearBoundary(t *testing.T) {
	// Completions in ISO week 52 of 2023 and week 1 of 2024, evaluated from
	// inside week 1 of 2024.
	h := weeklyHabit(date(2023, time.December, 1),
		date(2023, time.December, 27), // week 52/2023
		date(2024, time.January, 3),   // week 1/2024
	)

	got, err := Current(h, date(2024, time.January, 4))
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if got != 2 {
		t.Errorf("expected weekly streak 2 across year boundary, got %d", got)
	}
}

func TestCurrent_UnsupportedPeriodicity(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1), date(2024, time.January, 2))
	h.Periodicity = "fortnightly"

	if _, err := Current(h, date(2024, time.January, 2)); err == nil {
		t.Error("expected error for unsupported periodicity")
	}
}

func TestLongest_NoCompletions(t *testing.T) {
	h := weeklyHabit(date(2024, time.January, 1))

	got, err := Longest(h)
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected longest streak 0, got %d", got)
	}
}

func TestLongest_SingleCompletion(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1), date(2024, time.January, 8))

	got, err := Longest(h)
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 1 {
		t.Errorf("expected longest streak 1, got %d", got)
	}
}

func TestLongest_DailyTwoRunsWithGap(t *testing.T) {
	// Runs of 3 and 3 with a gap on 01-04; longest is 3, not 6.
	h := dailyHabit(date(2024, time.January, 1),
		date(2024, time.January, 1),
		date(2024, time.January, 2),
		date(2024, time.January, 3),
		date(2024, time.January, 5),
		date(2024, time.January, 6),
		date(2024, time.January, 7),
	)

	got, err := Longest(h)
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 3 {
		t.Errorf("expected longest streak 3, got %d", got)
	}
}

func TestLongest_DailyDuplicatesDoNotExtendRun(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1),
		date(2024, time.January, 2),
		time.Date(2024, time.January, 2, 22, 0, 0, 0, time.UTC),
		date(2024, time.January, 3),
	)

	got, err := Longest(h)
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 2 {
		t.Errorf("expected longest streak 2, got %d", got)
	}
}

func TestLongest_WeeklyYearBoundary(t *testing.T) {
	h := weeklyHabit(date(2023, time.December, 1),
		date(2023, time.December, 20), // week 51/2023
		date(2023, time.December, 27), // week 52/2023
		date(2024, time.January, 3),   // week 1/2024
		date(2024, time.January, 20),  // week 3/2024 — gap before this
	)

	got, err := Longest(h)
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 3 {
		t.Errorf("expected longest streak 3 across year boundary, got %d", got)
	}
}

func TestLongest_UnsortedInput(t *testing.T) {
	// Storage order is not guaranteed; the engine must sort for itself.
	h := dailyHabit(date(2024, time.January, 1),
		date(2024, time.January, 7),
		date(2024, time.January, 5),
		date(2024, time.January, 6),
	)

	got, err := Longest(h)
	if err != nil {
		t.Fatalf("Longest failed: %v", err)
	}
	if got != 3 {
		t.Errorf("expected longest streak 3 from unsorted completions, got %d", got)
	}
}

func TestCalculatorsArePure(t *testing.T) {
	h := dailyHabit(date(2024, time.January, 1),
		date(2024, time.January, 7),
		date(2024, time.January, 5),
		date(2024, time.January, 6),
	)
	before := make([]models.Completion, len(h.Completions))
	copy(before, h.Completions)
	asOf := date(2024, time.January, 7)

	cur1, _ := Current(h, asOf)
	long1, _ := Longest(h)
	due1, _ := IsDue(h, asOf)
	cur2, _ := Current(h, asOf)
	long2, _ := Longest(h)
	due2, _ := IsDue(h, asOf)

	if cur1 != cur2 || long1 != long2 || due1 != due2 {
		t.Error("repeated calls on an unmutated habit must yield identical results")
	}
	if len(h.Completions) != len(before) {
		t.Fatalf("completion list length changed: %d -> %d", len(before), len(h.Completions))
	}
	for i := range before {
		if h.Completions[i] != before[i] {
			t.Errorf("completion %d changed or reordered", i)
		}
	}
	if !h.Active {
		t.Error("active flag changed")
	}
}
