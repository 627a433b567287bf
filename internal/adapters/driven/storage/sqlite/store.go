package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/basket-cli/internal/core/domain"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/basket-cli/internal/logger"
)

// DatabaseFile is the name of the database file inside the data directory.
const DatabaseFile = "shopping.db"

// Store owns the on-disk shopping list database.
// The handle is opened lazily on first use and kept for the lifetime of the
// Store.
type Store struct {
	path     string
	migrator *migrator

	mu     sync.Mutex
	db     atomic.Pointer[sql.DB]
	closed bool

	// opens counts physical opens; more than one means the guard failed.
	opens atomic.Int32
}

// NewStore creates a store for the database in dataDir.
// If dataDir is empty, defaults to ~/.basket/data. No file is created until
// the store is first used.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	return &Store{
		path:     filepath.Join(dataDir, DatabaseFile),
		migrator: defaultMigrator(),
	}, nil
}

// DefaultDataDir returns ~/.basket/data.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".basket", "data"), nil
}

// DB returns the open database handle, opening and migrating the database
// on first call. Every failure wraps domain.ErrStoreUnavailable.
func (s *Store) DB(ctx context.Context) (*sql.DB, error) {
	if db := s.db.Load(); db != nil {
		return db, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("%w: store is closed", domain.ErrStoreUnavailable)
	}
	// Another caller may have finished opening while we waited.
	if db := s.db.Load(); db != nil {
		return db, nil
	}

	db, err := s.open(ctx)
	if err != nil {
		logger.Debug("opening %s failed: %v", s.path, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	s.db.Store(db)
	return db, nil
}

// Open eagerly performs the first-use open.
func (s *Store) Open(ctx context.Context) error {
	_, err := s.DB(ctx)
	return err
}

// open creates the directory and file, then runs pending migrations.
// Caller must hold s.mu.
func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", s.path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s.opens.Add(1)
	logger.Debug("opened database %s", s.path)

	from, to, err := s.migrator.run(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if from != to {
		logger.Info("migrated %s from schema version %d to %d", s.path, from, to)
	}

	return db, nil
}

// Version returns the schema version recorded in the database file.
func (s *Store) Version(ctx context.Context) (int, error) {
	db, err := s.DB(ctx)
	if err != nil {
		return 0, err
	}
	return userVersion(ctx, db)
}

// Close closes the database connection. Later calls to DB fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	db := s.db.Swap(nil)
	if db == nil {
		return nil
	}
	return db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ItemStore returns an ItemStore interface backed by this store.
func (s *Store) ItemStore() driven.ItemStore {
	return &itemStore{store: s}
}
