package models

import (
	"fmt"
	"time"
)

type Periodicity string

const (
	PeriodicityDaily  Periodicity = "daily"
	PeriodicityWeekly Periodicity = "weekly"
)

// Valid reports whether p is one of the two supported cadences.
func (p Periodicity) Valid() bool {
	return p == PeriodicityDaily || p == PeriodicityWeekly
}

// ParsePeriodicity converts a user-supplied string into a Periodicity.
func ParsePeriodicity(s string) (Periodicity, error) {
	p := Periodicity(s)
	if !p.Valid() {
		return "", fmt.Errorf("unsupported periodicity: %q (expected daily or weekly)", s)
	}
	return p, nil
}

// Habit represents a recurring practice to track
type Habit struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Name        string       `json:"name"`
	Periodicity Periodicity  `json:"periodicity"`
	CreatedAt   time.Time    `json:"created_at"`
	Active      bool         `json:"active"`
	Completions []Completion `json:"completions,omitempty"`
}

// LastCompletion returns the timestamp of the most recent completion, or nil
// if the habit has never been completed. The stored order is not trusted.
func (h Habit) LastCompletion() *time.Time {
	var last *time.Time
	for i := range h.Completions {
		ts := h.Completions[i].Timestamp
		if last == nil || ts.After(*last) {
			last = &ts
		}
	}
	return last
}
