// Package errors provides custom error types for the tablemap system.
// These errors enable programmatic error checking at the engine boundary
// while keeping the engine itself free of fatal error paths: every
// condition a malformed-but-nonempty record can produce is absorbed
// locally and reported through the audit path instead.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
var As = errors.As

// Common sentinel errors for the tablemap system.
var (
	// ErrMissingIdentity indicates a record has no usable name and
	// cannot participate in matching.
	ErrMissingIdentity = errors.New("record has no usable identity")

	// ErrEnrichmentUnavailable indicates the place-lookup collaborator
	// returned no usable data; the record proceeds unenriched.
	ErrEnrichmentUnavailable = errors.New("enrichment unavailable")

	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates an API key is required but not set.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrRateLimited indicates the lookup API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// MissingIdentityError reports a record that could not be matched because
// it carries no name. The record is retained in output under a synthetic
// identity; this error exists for operator visibility, not control flow.
type MissingIdentityError struct {
	Index  int
	Source string
}

// Error implements the error interface.
func (e *MissingIdentityError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("record %d from %s has no usable name", e.Index, e.Source)
	}
	return fmt.Sprintf("record %d has no usable name", e.Index)
}

// Is implements errors.Is support.
func (e *MissingIdentityError) Is(target error) bool {
	return target == ErrMissingIdentity
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// LookupError represents a failure from the place-lookup provider. The
// caller treats any LookupError as "no enrichment available this round".
type LookupError struct {
	Query      string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("place lookup for %q failed (status %d): %s", e.Query, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("place lookup for %q failed: %s", e.Query, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *LookupError) Is(target error) bool {
	if target == ErrEnrichmentUnavailable {
		return true
	}
	return e.StatusCode == 429 && target == ErrRateLimited
}

// ConfigError represents a configuration error in a collaborator adapter.
// The engine itself takes no configuration.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IOError represents a filesystem operation failure at the persistence
// boundary.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps a filesystem error with operation context.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}
