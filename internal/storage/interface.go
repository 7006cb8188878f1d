package storage

import "github.com/julianstephens/cadence/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Users
	CreateUser(models.User) error
	GetUser(username string) (models.User, error)

	// Habits. Read operations return habits with completions populated.
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabits(userID string, activeOnly bool) ([]models.Habit, error)
	DeactivateHabit(id string) error
	RestoreHabit(id string) error

	// Completions
	AddCompletion(habitID string, c models.Completion) error
	GetCompletions(habitID string, limit int) ([]models.Completion, error)

	// Utils
	GetConfigPath() string
}
