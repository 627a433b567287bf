// Package sqlite provides the SQLite-based implementation of driven.ItemStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Lazy Open
//
// NewStore does not touch the disk. The first call to Store.DB creates the
// data directory and database file (or opens the existing file) and applies
// pending migrations; later calls reuse the same handle. Concurrent first
// callers are serialised so only one physical open and one migration run
// ever happen.
//
// # Schema
//
// The schema version lives in PRAGMA user_version. Migrations are a table of
// from-version to to-version steps, each backed by an embedded SQL file in
// migrations/. All pending steps run inside a single transaction together
// with the version bump. A stored version with no known upgrade path makes
// the store fail with domain.ErrNoMigrationPath; data is never dropped.
//
// # Data Location
//
// By default, the database is stored at ~/.basket/data/shopping.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
