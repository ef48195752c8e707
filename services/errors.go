package services

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired means no acting identity was supplied for an operation
	// that needs one.
	ErrAuthRequired = errors.New("authentication required")

	// ErrMealNotFound covers both "does not exist" and "not owned by the
	// requester". The two cases must stay indistinguishable so that lookups
	// cannot be used to probe for other users' meal ids.
	ErrMealNotFound = errors.New("meal not found")
)

// ValidationError is bad input the caller can correct.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StorageError wraps a collaborator failure (S3, local disk, database) so the
// original cause stays attached for logging while handlers return a generic
// message.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
