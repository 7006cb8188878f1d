package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/cadence/internal/models"
)

type Store struct {
	Version  int                     `json:"version"`
	Settings Settings                `json:"settings"`
	Users    map[string]models.User  `json:"users"`  // keyed by username
	Habits   map[string]models.Habit `json:"habits"` // keyed by habit id, completions inline
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  1,
		Settings: DefaultSettings(),
		Users:    make(map[string]models.User),
		Habits:   make(map[string]models.Habit),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'cadence init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Users == nil {
		s.store.Users = make(map[string]models.User)
	}
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) CreateUser(user models.User) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Users[user.Username]; ok {
		return fmt.Errorf("username %q is already taken", user.Username)
	}
	for _, u := range s.store.Users {
		if u.Email == user.Email {
			return fmt.Errorf("email %q is already registered", user.Email)
		}
	}

	s.store.Users[user.Username] = user
	return s.save()
}

func (s *JSONStore) GetUser(username string) (models.User, error) {
	if s.store == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}

	user, ok := s.store.Users[username]
	if !ok {
		return models.User{}, fmt.Errorf("user %q not found", username)
	}

	return user, nil
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for _, h := range s.store.Habits {
		if h.UserID == habit.UserID && h.Name == habit.Name {
			return fmt.Errorf("habit %q already exists", habit.Name)
		}
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit with id %s not found", id)
	}

	return habit, nil
}

func (s *JSONStore) GetHabits(userID string, activeOnly bool) ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, h := range s.store.Habits {
		if h.UserID != userID {
			continue
		}
		if activeOnly && !h.Active {
			continue
		}
		habits = append(habits, h)
	}

	// Map iteration order is random; match the SQLite backend's ordering.
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (s *JSONStore) DeactivateHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return fmt.Errorf("habit with id %s not found", id)
	}
	if !habit.Active {
		return fmt.Errorf("habit with id %s is already inactive", id)
	}

	habit.Active = false
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) RestoreHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return fmt.Errorf("habit with id %s not found", id)
	}
	if habit.Active {
		return fmt.Errorf("cannot restore a habit that is active: %s", id)
	}

	habit.Active = true
	s.store.Habits[id] = habit
	return s.save()
}

func (s *JSONStore) AddCompletion(habitID string, c models.Completion) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[habitID]
	if !ok {
		return fmt.Errorf("habit with id %s not found", habitID)
	}

	habit.Completions = append(habit.Completions, c)
	s.store.Habits[habitID] = habit
	return s.save()
}

func (s *JSONStore) GetCompletions(habitID string, limit int) ([]models.Completion, error) {
	habit, err := s.GetHabit(habitID)
	if err != nil {
		return nil, err
	}

	completions := make([]models.Completion, len(habit.Completions))
	copy(completions, habit.Completions)
	sort.Slice(completions, func(i, j int) bool {
		return completions[j].Timestamp.Before(completions[i].Timestamp)
	})

	if limit > 0 && len(completions) > limit {
		completions = completions[:limit]
	}

	return completions, nil
}

// GetConfigPath returns the path to the underlying storage file.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
