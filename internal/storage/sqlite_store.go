package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/julianstephens/cadence/internal/models"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		periodicity TEXT NOT NULL CHECK (periodicity IN ('daily', 'weekly')),
		created_at TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE (user_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS completions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		habit_id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		mood INTEGER NOT NULL DEFAULT 0 CHECK (mood = 0 OR mood BETWEEN 1 AND 10),
		FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_habits_user_id ON habits(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_completions_habit_id ON completions(habit_id)`,
	`CREATE INDEX IF NOT EXISTS idx_completions_timestamp ON completions(timestamp)`,
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'cadence init' first")
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) migrate() error {
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ExpectedTables lists the tables the schema must contain; the doctor command
// checks them after connecting.
func ExpectedTables() []string {
	return []string{"users", "habits", "completions", "settings"}
}

// HasTable reports whether the named table exists in the open database.
func (s *SQLiteStore) HasTable(name string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "current_user":
			settings.CurrentUser = value
		case "inactivity_months":
			months, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing inactivity_months: %w", err)
			}
			settings.InactivityMonths = months
		}
		count++
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("current_user", settings.CurrentUser); err != nil {
		return err
	}
	if _, err := stmt.Exec("inactivity_months", strconv.Itoa(settings.InactivityMonths)); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) CreateUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Username, err)
	}
	return nil
}

func (s *SQLiteStore) GetUser(username string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = ?`, username)

	var u models.User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %q not found", username)
		}
		return models.User{}, err
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse user created_at: %w", err)
	}
	u.CreatedAt = ts

	return u, nil
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	active := 0
	if habit.Active {
		active = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO habits (id, user_id, name, periodicity, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, string(habit.Periodicity),
		habit.CreatedAt.Format(time.RFC3339), active,
	)
	if err != nil {
		return fmt.Errorf("failed to add habit %q: %w", habit.Name, err)
	}
	return nil
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, name, periodicity, created_at, is_active
		FROM habits WHERE id = ?`, id)

	habit, err := scanHabit(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, fmt.Errorf("habit with id %s not found", id)
		}
		return models.Habit{}, err
	}

	completions, err := s.GetCompletions(id, 0)
	if err != nil {
		return models.Habit{}, err
	}
	habit.Completions = completions

	return habit, nil
}

func (s *SQLiteStore) GetHabits(userID string, activeOnly bool) ([]models.Habit, error) {
	query := `
		SELECT id, user_id, name, periodicity, created_at, is_active
		FROM habits WHERE user_id = ?`
	if activeOnly {
		query += " AND is_active = 1"
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		completions, err := s.GetCompletions(habits[i].ID, 0)
		if err != nil {
			return nil, err
		}
		habits[i].Completions = completions
	}

	return habits, nil
}

func scanHabit(scan func(...any) error) (models.Habit, error) {
	var h models.Habit
	var periodicity, createdAt string
	var active int

	if err := scan(&h.ID, &h.UserID, &h.Name, &periodicity, &createdAt, &active); err != nil {
		return models.Habit{}, err
	}

	h.Periodicity = models.Periodicity(periodicity)
	h.Active = active == 1

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse habit created_at: %w", err)
	}
	h.CreatedAt = ts

	return h, nil
}

func (s *SQLiteStore) DeactivateHabit(id string) error {
	// Soft delete: flip is_active instead of removing the record
	var active int
	err := s.db.QueryRow("SELECT is_active FROM habits WHERE id = ?", id).Scan(&active)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("habit with id %s not found", id)
		}
		return fmt.Errorf("failed to check habit existence: %w", err)
	}

	if active == 0 {
		return fmt.Errorf("habit with id %s is already inactive", id)
	}

	_, err = s.db.Exec("UPDATE habits SET is_active = 0 WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) RestoreHabit(id string) error {
	var active int
	err := s.db.QueryRow("SELECT is_active FROM habits WHERE id = ?", id).Scan(&active)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("habit with id %s not found", id)
		}
		return fmt.Errorf("failed to check habit existence: %w", err)
	}

	if active == 1 {
		return fmt.Errorf("cannot restore a habit that is active: %s", id)
	}

	_, err = s.db.Exec("UPDATE habits SET is_active = 1 WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) AddCompletion(habitID string, c models.Completion) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (habit_id, timestamp, note, mood)
		VALUES (?, ?, ?, ?)`,
		habitID, c.Timestamp.Format(time.RFC3339), c.Note, c.Mood,
	)
	if err != nil {
		return fmt.Errorf("failed to add completion: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetCompletions(habitID string, limit int) ([]models.Completion, error) {
	query := "SELECT timestamp, note, mood FROM completions WHERE habit_id = ? ORDER BY timestamp DESC"
	args := []any{habitID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		var c models.Completion
		var timestamp string
		if err := rows.Scan(&timestamp, &c.Note, &c.Mood); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse completion timestamp: %w", err)
		}
		c.Timestamp = ts
		completions = append(completions, c)
	}

	return completions, rows.Err()
}

// GetConfigPath returns the path to the underlying database file.
//
// Concurrency note:
//   - SQLiteStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple cadence processes against the same database path at the
//     same time is not supported.
func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
