package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/cadence/internal/models"
)

// dayKey identifies a local calendar date.
type dayKey struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{year: y, month: m, day: d}
}

func (k dayKey) before(o dayKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}
	if k.month != o.month {
		return k.month < o.month
	}
	return k.day < o.day
}

// prev returns the preceding calendar day. The arithmetic runs in UTC so it
// cannot be skewed by DST transitions.
func (k dayKey) prev() dayKey {
	return dayOf(time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}

// next returns the following calendar day.
func (k dayKey) next() dayKey {
	return dayOf(time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1))
}

// weekKey identifies an ISO-8601 calendar week. Ordering must always compare
// (year, week) lexicographically, never raw week numbers, or week 52 → week 1
// transitions at year boundaries come out backwards.
type weekKey struct {
	year int
	week int
}

func weekOf(t time.Time) weekKey {
	y, w := t.ISOWeek()
	return weekKey{year: y, week: w}
}

func (k weekKey) before(o weekKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}
	return k.week < o.week
}

// prev returns the preceding week, rolling week 1 back to week 52 of the
// previous year. ISO years can have 53 weeks; treating 52 as the universal
// last week is a known simplification.
func (k weekKey) prev() weekKey {
	if k.week <= 1 {
		return weekKey{year: k.year - 1, week: 52}
	}
	return weekKey{year: k.year, week: k.week - 1}
}

// next returns the following week under the same week-52 simplification.
func (k weekKey) next() weekKey {
	if k.week >= 52 {
		return weekKey{year: k.year + 1, week: 1}
	}
	return weekKey{year: k.year, week: k.week + 1}
}

// IsDue reports whether the habit requires a completion in the period
// containing target. Inactive habits are never due, and a habit has no due
// obligation before its creation period.
func IsDue(h models.Habit, target time.Time) (bool, error) {
	if !h.Active {
		return false, nil
	}

	switch h.Periodicity {
	case models.PeriodicityDaily:
		day := dayOf(target)
		if day.before(dayOf(h.CreatedAt)) {
			return false, nil
		}
		for i := range h.Completions {
			if dayOf(h.Completions[i].Timestamp) == day {
				return false, nil
			}
		}
		return true, nil

	case models.PeriodicityWeekly:
		week := weekOf(target)
		if week.before(weekOf(h.CreatedAt)) {
			return false, nil
		}
		for i := range h.Completions {
			if weekOf(h.Completions[i].Timestamp) == week {
				return false, nil
			}
		}
		return true, nil

	default:
		return false, fmt.Errorf("unsupported periodicity: %q", h.Periodicity)
	}
}

// Current counts consecutive completed periods ending at the period that
// contains asOf. If that period itself has no completion the streak is 0.
// Multiple completions in one period count once; completions after asOf's
// period are ignored. The habit is not mutated.
func Current(h models.Habit, asOf time.Time) (int, error) {
	switch h.Periodicity {
	case models.PeriodicityDaily:
		ref := dayOf(asOf)
		seen := make(map[dayKey]struct{}, len(h.Completions))
		for i := range h.Completions {
			if k := dayOf(h.Completions[i].Timestamp); !ref.before(k) {
				seen[k] = struct{}{}
			}
		}

		count := 0
		for cursor := ref; ; cursor = cursor.prev() {
			if _, ok := seen[cursor]; !ok {
				break
			}
			count++
		}
		return count, nil

	case models.PeriodicityWeekly:
		ref := weekOf(asOf)
		seen := make(map[weekKey]struct{}, len(h.Completions))
		for i := range h.Completions {
			if k := weekOf(h.Completions[i].Timestamp); !ref.before(k) {
				seen[k] = struct{}{}
			}
		}

		count := 0
		for cursor := ref; ; cursor = cursor.prev() {
			if _, ok := seen[cursor]; !ok {
				break
			}
			count++
		}
		return count, nil

	default:
		return 0, fmt.Errorf("unsupported periodicity: %q", h.Periodicity)
	}
}

// Longest returns the maximum run of consecutive periods with at least one
// completion over the habit's whole history. Same-period duplicates neither
// break nor extend a run. The habit is not mutated.
func Longest(h models.Habit) (int, error) {
	switch h.Periodicity {
	case models.PeriodicityDaily:
		uniq := make(map[dayKey]struct{}, len(h.Completions))
		for i := range h.Completions {
			uniq[dayOf(h.Completions[i].Timestamp)] = struct{}{}
		}
		if len(uniq) == 0 {
			return 0, nil
		}

		days := make([]dayKey, 0, len(uniq))
		for k := range uniq {
			days = append(days, k)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].before(days[j]) })

		longest, run := 1, 1
		for i := 1; i < len(days); i++ {
			if days[i] == days[i-1].next() {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 1
			}
		}
		return longest, nil

	case models.PeriodicityWeekly:
		uniq := make(map[weekKey]struct{}, len(h.Completions))
		for i := range h.Completions {
			uniq[weekOf(h.Completions[i].Timestamp)] = struct{}{}
		}
		if len(uniq) == 0 {
			return 0, nil
		}

		weeks := make([]weekKey, 0, len(uniq))
		for k := range uniq {
			weeks = append(weeks, k)
		}
		sort.Slice(weeks, func(i, j int) bool { return weeks[i].before(weeks[j]) })

		longest, run := 1, 1
		for i := 1; i < len(weeks); i++ {
			if weeks[i] == weeks[i-1].next() {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 1
			}
		}
		return longest, nil

	default:
		return 0, fmt.Errorf("unsupported periodicity: %q", h.Periodicity)
	}
}
