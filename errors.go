package blobkit

import (
	"errors"
	"fmt"
)

// Common blob store errors
var (
	ErrNotExist            = errors.New("blob does not exist")
	ErrExist               = errors.New("blob already exists")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrPathViolation       = errors.New("path escapes storage root")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	ErrNotDir              = errors.New("not a directory")
	ErrIsDir               = errors.New("is a directory")
	ErrClosed              = errors.New("stream already closed")
	ErrNotSupported        = errors.New("operation not supported")
)

// PathError records an error and the operation and blob URL or path that
// caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// IsNotExist reports whether an error indicates that a blob or directory
// does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsPathViolation reports whether an error indicates that a resolved path
// escaped the storage root sandbox
func IsPathViolation(err error) bool {
	return errors.Is(err, ErrPathViolation)
}

// IsInvalidArgument reports whether an error indicates a missing or
// malformed required argument
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsExtensionNotAllowed reports whether an error indicates that a write or
// move destination was rejected by the extension policy
func IsExtensionNotAllowed(err error) bool {
	return errors.Is(err, ErrExtensionNotAllowed)
}
