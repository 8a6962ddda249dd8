package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// dbFileName is the SQLite database file inside the data directory.
// It is disposable; the JSONL files are authoritative.
const dbFileName = "pantry.db"

// Backend is the SQLite-backed workspace index.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates an index backend. The backend is not attached;
// call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Attach initializes the backend: creates the data directory, rebuilds
// the SQLite database from the JSONL files, and applies the schema.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is rebuilt from JSONL on every attach; a stale file
	// from a previous generation must not survive.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	for _, ddl := range allSchemas {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("loading JSONL: %w", err)
	}

	b.config = config
	b.config.DataDir = dataDir
	b.db = db
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent: detaching a detached backend
// succeeds. After Detach, index operations return ErrIndexDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	b.attached = false
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// checkAttached returns ErrIndexDetached unless the backend is attached.
// Callers must hold b.mu.
func (b *Backend) checkAttached() error {
	if !b.attached {
		return types.ErrIndexDetached
	}
	return nil
}
