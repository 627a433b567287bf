package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates the database could not be opened or migrated.
	// It is fatal to the operation in progress.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNoMigrationPath indicates the stored schema version has no known
	// upgrade route. The store refuses to open rather than drop data.
	ErrNoMigrationPath = fmt.Errorf("%w: no migration path", ErrStoreUnavailable)

	// ErrValidationRejected indicates a caller submitted an item that must
	// not be persisted, such as one with a blank name.
	ErrValidationRejected = errors.New("validation rejected")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")
)
