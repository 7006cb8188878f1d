package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
)

type ConflictType string

const (
	ConflictDuplicateHabitName       ConflictType = "duplicate_habit_name"
	ConflictEmptyHabitName           ConflictType = "empty_habit_name"
	ConflictInvalidPeriodicity       ConflictType = "invalid_periodicity"
	ConflictCompletionBeforeCreation ConflictType = "completion_before_creation"
	ConflictFutureCompletion         ConflictType = "future_completion"
	ConflictInvalidMood              ConflictType = "invalid_mood"
)

type Conflict struct {
	Type    ConflictType
	HabitID string
	Message string
}

type ValidationResult struct {
	Conflicts []Conflict
}

func (r ValidationResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

func (r ValidationResult) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d conflict(s):\n", len(r.Conflicts))
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "  [%s] %s\n", c.Type, c.Message)
	}
	return b.String()
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks stored habit data for inconsistencies that the
// constructors normally prevent but imported or hand-edited data may carry.
func (v *Validator) ValidateHabits(habits []models.Habit, now time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]string) // userID+name -> habit id
	for _, h := range habits {
		if strings.TrimSpace(h.Name) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictEmptyHabitName,
				HabitID: h.ID,
				Message: fmt.Sprintf("habit %s has an empty name", h.ID),
			})
		}

		key := h.UserID + "\x00" + h.Name
		if other, ok := seen[key]; ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictDuplicateHabitName,
				HabitID: h.ID,
				Message: fmt.Sprintf("habit name %q is shared by %s and %s", h.Name, other, h.ID),
			})
		} else {
			seen[key] = h.ID
		}

		if !h.Periodicity.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictInvalidPeriodicity,
				HabitID: h.ID,
				Message: fmt.Sprintf("habit %q has unsupported periodicity %q", h.Name, h.Periodicity),
			})
		}

		result.Conflicts = append(result.Conflicts, v.validateCompletions(h, now)...)
	}

	return result
}

func (v *Validator) validateCompletions(h models.Habit, now time.Time) []Conflict {
	var conflicts []Conflict

	for _, c := range h.Completions {
		if c.Timestamp.After(now) {
			conflicts = append(conflicts, Conflict{
				Type:    ConflictFutureCompletion,
				HabitID: h.ID,
				Message: fmt.Sprintf("habit %q has a completion in the future (%s)", h.Name, c.Timestamp.Format(time.RFC3339)),
			})
		}
		if beforeCalendarDay(c.Timestamp, h.CreatedAt) {
			conflicts = append(conflicts, Conflict{
				Type:    ConflictCompletionBeforeCreation,
				HabitID: h.ID,
				Message: fmt.Sprintf("habit %q has a completion before its creation date (%s)", h.Name, c.Timestamp.Format(time.RFC3339)),
			})
		}
		if c.Mood != constants.MoodUnset && (c.Mood < constants.MoodMin || c.Mood > constants.MoodMax) {
			conflicts = append(conflicts, Conflict{
				Type:    ConflictInvalidMood,
				HabitID: h.ID,
				Message: fmt.Sprintf("habit %q has a completion with mood %d outside [%d, %d]", h.Name, c.Mood, constants.MoodMin, constants.MoodMax),
			})
		}
	}

	return conflicts
}

// beforeCalendarDay reports whether a falls on an earlier calendar date than
// b. Comparing Date() components keeps the check on local calendar days;
// truncating to 24h windows would shift the boundary for non-UTC times.
func beforeCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
