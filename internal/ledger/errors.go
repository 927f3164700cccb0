package ledger

import "errors"

var (
	// ErrValidation is returned when a habit name is empty after trimming.
	ErrValidation = errors.New("validation error")

	// ErrFormat is returned when an imported snapshot is malformed or
	// lacks the habits or logs field.
	ErrFormat = errors.New("format error")

	// ErrPersistenceRead marks a stored ledger that could not be read.
	// It is never returned from an operation; Open recovers with an
	// empty ledger and exposes the cause through LoadErr.
	ErrPersistenceRead = errors.New("persistence read error")

	// ErrPersistenceWrite marks a failed save. The mutation that caused
	// it is not applied in memory.
	ErrPersistenceWrite = errors.New("persistence write error")
)
