// Package errs provides centralized error values for the backend.
//
// This package must not import any other internal packages.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a lookup referenced an entity id that does not
	// exist. Derived queries and report generation return it for missing
	// parent entities; plain CRUD operations stay tolerant instead.
	ErrNotFound = errors.New("not found")

	// ErrRemoteService indicates a failure talking to the auth/session or
	// profile remote service.
	ErrRemoteService = errors.New("remote service error")

	// ErrPersistence indicates the durable key-value blob could not be
	// read or written.
	ErrPersistence = errors.New("persistence error")

	// ErrInvalidCredentials indicates a failed password login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Wrap adds context to an error, preserving the chain for errors.Is.
// Returns nil if err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
