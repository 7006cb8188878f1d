package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
)

func setupDatabase(t *testing.T) (string, *storage.SQLiteStore) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cadence.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	user := models.User{
		ID: "user-1", Username: "demo", Email: "demo@example.com",
		PasswordHash: "salt$digest", CreatedAt: time.Now(),
	}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return dbPath, store
}

func TestCreateAndListBackups(t *testing.T) {
	dbPath, _ := setupDatabase(t)
	manager := NewManager(dbPath)

	path, err := manager.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, BackupFileSuffix) {
		t.Errorf("unexpected backup name: %s", name)
	}

	backups, err := manager.ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("expected backup file to be non-empty")
	}
}

func TestCreateBackup_MissingDatabase(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "missing.db"))

	if _, err := manager.CreateBackup(); err == nil {
		t.Error("expected error when database does not exist")
	}
}

func TestCreateBackup_UniqueNames(t *testing.T) {
	dbPath, _ := setupDatabase(t)
	manager := NewManager(dbPath)

	// Same-second backups must still get distinct names.
	first, err := manager.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	second, err := manager.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct backup paths, both were %s", first)
	}
}

func TestListBackups_EmptyDir(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "cadence.db"))

	backups, err := manager.ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath, store := setupDatabase(t)
	manager := NewManager(dbPath)

	backupPath, err := manager.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	// Change the database after the backup.
	habit := models.Habit{
		ID: "habit-1", UserID: "user-1", Name: "Meditate",
		Periodicity: models.PeriodicityDaily, CreatedAt: time.Now(), Active: true,
	}
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	store.Close()

	if err := manager.RestoreBackup(backupPath); err != nil {
		t.Fatalf("failed to restore backup: %v", err)
	}

	restored := storage.NewSQLiteStore(dbPath)
	if err := restored.Load(); err != nil {
		t.Fatalf("failed to load restored database: %v", err)
	}
	defer restored.Close()

	if _, err := restored.GetUser("demo"); err != nil {
		t.Errorf("expected user to survive restore: %v", err)
	}
	if _, err := restored.GetHabit("habit-1"); err == nil {
		t.Error("habit added after the backup should be gone after restore")
	}

	// The pre-restore state was snapshotted.
	backups, err := manager.ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected a safety backup of the pre-restore database, got %d backups", len(backups))
	}
}

func TestRestoreBackup_InvalidFile(t *testing.T) {
	dbPath, _ := setupDatabase(t)
	manager := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to write bogus file: %v", err)
	}

	if err := manager.RestoreBackup(bogus); err == nil {
		t.Error("expected error when restoring a non-database file")
	}
}

func TestRotation(t *testing.T) {
	dbPath, _ := setupDatabase(t)
	manager := NewManager(dbPath)

	for i := 0; i < MaxBackups+3; i++ {
		if _, err := manager.CreateBackup(); err != nil {
			t.Fatalf("failed to create backup %d: %v", i, err)
		}
	}

	backups, err := manager.ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) > MaxBackups {
		t.Errorf("expected at most %d backups after rotation, got %d", MaxBackups, len(backups))
	}
}
