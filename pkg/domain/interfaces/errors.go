package interfaces

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by all repository backends. Callers match them
// with errors.Is regardless of which backend is wired.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = goerr.New("record not found")

	// ErrConflict is returned when a conditional update loses: the stored
	// state no longer matches what the caller observed.
	ErrConflict = goerr.New("state conflict")
)
