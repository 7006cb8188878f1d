package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
)

// Completion represents a single check-off event for a habit. Completions are
// immutable once created; equality is structural.
type Completion struct {
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
	Mood      int       `json:"mood,omitempty"` // constants.MoodUnset when not recorded
}

// NewCompletion builds a validated completion record. recordedAt is the clock
// reading at the moment of check-off; timestamps after it are rejected so a
// completion can never claim a future period.
func NewCompletion(timestamp time.Time, note string, mood int, recordedAt time.Time) (Completion, error) {
	if timestamp.After(recordedAt) {
		return Completion{}, fmt.Errorf("completion timestamp cannot be in the future")
	}
	if mood != constants.MoodUnset && (mood < constants.MoodMin || mood > constants.MoodMax) {
		return Completion{}, fmt.Errorf("mood score must be between %d and %d", constants.MoodMin, constants.MoodMax)
	}
	return Completion{Timestamp: timestamp, Note: note, Mood: mood}, nil
}

// HasMood reports whether a mood score was recorded.
func (c Completion) HasMood() bool {
	return c.Mood != constants.MoodUnset
}
