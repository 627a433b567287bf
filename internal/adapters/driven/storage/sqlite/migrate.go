package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/custodia-labs/basket-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/basket-cli/internal/core/domain"
	"github.com/custodia-labs/basket-cli/internal/logger"
)

// SchemaVersion is the schema version this build reads and writes.
const SchemaVersion = 2

// Migration is one step of the upgrade table.
// Its SQL is read from "<Name>.up.sql" in the migrations filesystem.
type Migration struct {
	From int
	To   int
	Name string
}

// Migrations lists every known upgrade step.
var Migrations = []Migration{
	{From: 0, To: 1, Name: "001_create_shopping_list"},
	{From: 1, To: 2, Name: "002_add_image_url"},
}

type migrator struct {
	fsys   fs.FS
	steps  []Migration
	target int
}

func defaultMigrator() *migrator {
	return &migrator{
		fsys:   migrations.FS,
		steps:  Migrations,
		target: SchemaVersion,
	}
}

// plan returns the ordered steps that take current to the target version.
func (m *migrator) plan(current int) ([]Migration, error) {
	if current > m.target {
		return nil, fmt.Errorf("%w: stored schema version %d is newer than supported version %d",
			domain.ErrNoMigrationPath, current, m.target)
	}

	var steps []Migration
	for v := current; v != m.target; {
		next, ok := m.step(v)
		if !ok {
			return nil, fmt.Errorf("%w: no migration from schema version %d", domain.ErrNoMigrationPath, v)
		}
		steps = append(steps, next)
		v = next.To
	}
	return steps, nil
}

// step finds the migration starting at version v.
// Steps that do not move forward are ignored so plan always terminates.
func (m *migrator) step(v int) (Migration, bool) {
	for _, s := range m.steps {
		if s.From == v && s.To > v && s.To <= m.target {
			return s, true
		}
	}
	return Migration{}, false
}

// run applies all pending migrations in one transaction and records the
// new version. It returns the version found and the version left behind.
func (m *migrator) run(ctx context.Context, db *sql.DB) (from, to int, err error) {
	current, err := userVersion(ctx, db)
	if err != nil {
		return 0, 0, err
	}

	steps, err := m.plan(current)
	if err != nil {
		return current, current, err
	}
	if len(steps) == 0 {
		return current, current, nil
	}

	logger.Section("Migration")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return current, current, fmt.Errorf("beginning migration: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, step := range steps {
		content, err := fs.ReadFile(m.fsys, step.Name+".up.sql")
		if err != nil {
			return current, current, fmt.Errorf("reading migration %s: %w", step.Name, err)
		}

		logger.Debug("applying migration %s (%d -> %d)", step.Name, step.From, step.To)
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return current, current, fmt.Errorf("executing migration %s: %w", step.Name, err)
		}
	}

	// PRAGMA does not accept bound parameters; target is an int.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.target)); err != nil {
		return current, current, fmt.Errorf("recording schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return current, current, fmt.Errorf("committing migration: %w", err)
	}
	return current, m.target, nil
}

// userVersion reads PRAGMA user_version.
func userVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}
	return v, nil
}
