package analytics

import (
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/streak"
)

// Ranking names the habit that won a streak comparison. A zero Ranking (empty
// HabitID) means no habits were supplied.
type Ranking struct {
	HabitID     string             `json:"habit_id"`
	HabitName   string             `json:"habit_name"`
	Periodicity models.Periodicity `json:"periodicity"`
	Streak      int                `json:"streak"`
}

// Summary is the per-habit analytics record handed to reporting layers. It
// holds only primitives; no references back into storage.
type Summary struct {
	HabitID        string             `json:"habit_id"`
	HabitName      string             `json:"habit_name"`
	Periodicity    models.Periodicity `json:"periodicity"`
	CurrentStreak  int                `json:"current_streak"`
	LongestStreak  int                `json:"longest_streak"`
	Completions    int                `json:"completions"`
	LastCompletion *time.Time         `json:"last_completion,omitempty"`
}

// FilterByPeriodicity returns the habits with the given cadence, preserving
// input order.
func FilterByPeriodicity(habits []models.Habit, p models.Periodicity) []models.Habit {
	filtered := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.Periodicity == p {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// BestLongestStreak returns the habit with the maximum longest streak. On a
// tie the habit that appears first in the input wins.
func BestLongestStreak(habits []models.Habit) (Ranking, error) {
	return best(habits, streak.Longest)
}

// BestCurrentStreak returns the habit with the maximum current streak as of
// the given time. Same first-wins tie-break as BestLongestStreak.
func BestCurrentStreak(habits []models.Habit, asOf time.Time) (Ranking, error) {
	return best(habits, func(h models.Habit) (int, error) {
		return streak.Current(h, asOf)
	})
}

func best(habits []models.Habit, measure func(models.Habit) (int, error)) (Ranking, error) {
	var top Ranking
	for i, h := range habits {
		n, err := measure(h)
		if err != nil {
			return Ranking{}, err
		}
		// Strict > keeps the first habit on ties.
		if i == 0 || n > top.Streak {
			top = Ranking{HabitID: h.ID, HabitName: h.Name, Periodicity: h.Periodicity, Streak: n}
		}
	}
	return top, nil
}

// InactiveHabits returns habits whose last completion is older than
// months x 30 days before asOf, or that have never been completed.
func InactiveHabits(habits []models.Habit, months int, asOf time.Time) []models.Habit {
	cutoff := asOf.AddDate(0, 0, -months*constants.InactivityMonthDays)

	inactive := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		last := h.LastCompletion()
		if last == nil || last.Before(cutoff) {
			inactive = append(inactive, h)
		}
	}
	return inactive
}

// Summaries computes the per-habit analytics records for every habit,
// preserving input order.
func Summaries(habits []models.Habit, asOf time.Time) ([]Summary, error) {
	summaries := make([]Summary, 0, len(habits))
	for _, h := range habits {
		current, err := streak.Current(h, asOf)
		if err != nil {
			return nil, err
		}
		longest, err := streak.Longest(h)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summary{
			HabitID:        h.ID,
			HabitName:      h.Name,
			Periodicity:    h.Periodicity,
			CurrentStreak:  current,
			LongestStreak:  longest,
			Completions:    len(h.Completions),
			LastCompletion: h.LastCompletion(),
		})
	}
	return summaries, nil
}
