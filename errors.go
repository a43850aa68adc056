package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an image id does not resolve to a record.
var ErrNotFound = errors.New("image not found")

// UpstreamStorageError wraps a failure from the asset store. The record
// store is never touched when an operation fails with this error.
type UpstreamStorageError struct {
	Op  string
	Err error
}

func (e *UpstreamStorageError) Error() string {
	return fmt.Sprintf("asset store %s failed: %s", e.Op, e.Err)
}

func (e *UpstreamStorageError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a failed record store write. When it happens after
// an asset upload, the uploaded binary is left behind as an orphaned asset.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("record store %s failed: %s", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
