package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key is absent from the snapshot.
	ErrNotFound = errors.New("definition not found")
	// ErrStoreUnavailable is returned when no snapshot is loaded.
	ErrStoreUnavailable = errors.New("definition store unavailable")
	// ErrCorruptRecord matches every *CorruptRecordError.
	ErrCorruptRecord = errors.New("corrupt definition record")
)

// CorruptRecordError reports a stored document that could not be decoded.
type CorruptRecordError struct {
	Table Table
	ID    uint32
	Err   error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record %s/%d: %v", e.Table, e.ID, e.Err)
}

func (e *CorruptRecordError) Unwrap() error {
	return e.Err
}

// Is reports ErrCorruptRecord as a match so callers need not type-assert.
func (e *CorruptRecordError) Is(target error) bool {
	return target == ErrCorruptRecord
}
