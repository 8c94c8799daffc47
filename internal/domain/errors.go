package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrHelpRequested indicates the bare help flag was given; the caller
	// prints usage and exits non-zero
	ErrHelpRequested = errors.New("help requested")

	// ErrEmptyPlan indicates the release plan contains no packages
	ErrEmptyPlan = errors.New("release plan has no packages")

	// ErrPublishFailed indicates the registry publish command failed
	ErrPublishFailed = errors.New("publish failed")

	// ErrTagExists indicates the release tag is already present
	ErrTagExists = errors.New("tag already exists")

	// ErrRemoteNotFound indicates the push remote is not configured
	ErrRemoteNotFound = errors.New("remote not found")

	// ErrNotRepository indicates the release root is not inside a git repository
	ErrNotRepository = errors.New("not a git repository")

	// ErrAborted indicates the user declined the confirmation prompt
	ErrAborted = errors.New("release aborted")
)

// PublishError represents a failed publish of a single package
type PublishError struct {
	Package  string
	Dir      string
	ExitCode int
	Err      error
}

func (e *PublishError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("publish %s (%s): exit status %d: %v", e.Package, e.Dir, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("publish %s (%s): %v", e.Package, e.Dir, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// Is reports ErrPublishFailed so callers can match any publish failure
func (e *PublishError) Is(target error) bool {
	return target == ErrPublishFailed
}

// NewPublishError creates a new PublishError
func NewPublishError(pkg Package, exitCode int, err error) *PublishError {
	return &PublishError{
		Package:  pkg.Name,
		Dir:      pkg.Dir,
		ExitCode: exitCode,
		Err:      err,
	}
}

// Tag operations reported by TagError
const (
	TagOpCreate = "create"
	TagOpPush   = "push"
)

// TagError represents a failed tag creation or push
type TagError struct {
	Tag    string
	Op     string
	Remote string
	Err    error
}

func (e *TagError) Error() string {
	if e.Remote != "" {
		return fmt.Sprintf("tag %s: %s to %s: %v", e.Tag, e.Op, e.Remote, e.Err)
	}
	return fmt.Sprintf("tag %s: %s: %v", e.Tag, e.Op, e.Err)
}

func (e *TagError) Unwrap() error {
	return e.Err
}

// NewTagError creates a new TagError
func NewTagError(tag, op, remote string, err error) *TagError {
	return &TagError{
		Tag:    tag,
		Op:     op,
		Remote: remote,
		Err:    err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
