package storage

import "github.com/julianstephens/cadence/internal/constants"

// Settings holds the small amount of mutable application state that is not
// habit data: the logged-in user for one-shot CLI commands and the inactivity
// reporting threshold.
type Settings struct {
	CurrentUser      string `json:"current_user"`
	InactivityMonths int    `json:"inactivity_months"`
}

// DefaultSettings returns the settings written at init time.
func DefaultSettings() Settings {
	return Settings{
		InactivityMonths: constants.DefaultInactivityMonths,
	}
}
