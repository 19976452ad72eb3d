package identity

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	appDirectoryName = "photochat"
	dbFileName       = "identity.db"
)

// Store persists the per-install user identifier in a local SQLite database.
// The table holds at most one row.
type Store struct {
	db *sql.DB
}

// ResolveDataDir returns the OS-aware application data directory.
//
// If PHOTOCHAT_DATA_DIR is set, its value is used as an explicit override.
func ResolveDataDir() (string, error) {
	if override := os.Getenv("PHOTOCHAT_DATA_DIR"); override != "" {
		return override, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}

	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(base, appDirectoryName), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appDirectoryName), nil
	default:
		base := os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			base = filepath.Join(home, ".config")
		}
		return filepath.Join(base, appDirectoryName), nil
	}
}

// OpenStore creates the data directory if needed and opens the identity database.
func OpenStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory %q: %w", dataDir, err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open identity database: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS device_identity (
  id         INTEGER PRIMARY KEY CHECK (id = 1),
  user_id    TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate identity database: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns the persisted identifier, or "" when none has been saved yet.
func (s *Store) Load() (string, error) {
	var userID string
	err := s.db.QueryRow(`SELECT user_id FROM device_identity WHERE id = 1`).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load device identity: %w", err)
	}
	return userID, nil
}

// Save persists the identifier. A previously saved identifier is never
// overwritten; the first write wins for the lifetime of the install.
func (s *Store) Save(userID string) error {
	_, err := s.db.Exec(
		`INSERT INTO device_identity (id, user_id, created_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO NOTHING`,
		userID,
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save device identity: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
