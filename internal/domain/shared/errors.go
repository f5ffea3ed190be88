// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")

	// Storage errors
	ErrStorage = errors.New("storage error")

	// Import/export errors
	ErrImport = errors.New("import error")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "subject", "attendance", "planner"
	Op      string // Operation that failed, e.g., "Create", "MarkDay"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Subject domain errors
var (
	ErrSubjectNotFound      = NewDomainError("subject", "Find", ErrNotFound, "subject not found")
	ErrSubjectAlreadyExists = NewDomainError("subject", "Create", ErrAlreadyExists, "subject already exists")
	ErrInvalidSubjectName   = NewDomainError("subject", "Validate", ErrEmptyValue, "subject name cannot be empty")
)

// Attendance domain errors
var (
	ErrAttendanceNotFound      = NewDomainError("attendance", "Find", ErrNotFound, "attendance record not found")
	ErrInvalidAttendanceStatus = NewDomainError("attendance", "Validate", ErrInvalidInput, "invalid attendance status")
	ErrInvalidAttendanceDate   = NewDomainError("attendance", "Validate", ErrInvalidFormat, "invalid attendance date")
)

// Task domain errors
var (
	ErrTaskNotFound         = NewDomainError("task", "Find", ErrNotFound, "task not found")
	ErrTaskAlreadyCompleted = NewDomainError("task", "Complete", ErrStateTransition, "task already completed")
	ErrInvalidTaskStatus    = NewDomainError("task", "Validate", ErrInvalidInput, "invalid task status")
)

// Topic domain errors
var (
	ErrTopicNotFound        = NewDomainError("topic", "Find", ErrNotFound, "topic not found")
	ErrInvalidDifficulty    = NewDomainError("topic", "Validate", ErrInvalidInput, "invalid topic difficulty")
	ErrInvalidMasteryStatus = NewDomainError("topic", "Validate", ErrInvalidInput, "invalid topic mastery status")
)

// Focus domain errors
var (
	ErrInvalidFocusDuration = NewDomainError("focus", "Validate", ErrValueOutOfRange, "focus duration must be positive")
)

// Planner domain errors
var (
	ErrPlanNotFound   = NewDomainError("planner", "Find", ErrNotFound, "weekly plan not found")
	ErrInvalidWeekKey = NewDomainError("planner", "Validate", ErrInvalidFormat, "week key must be yyyy-MM-dd")
)

// Profile domain errors
var (
	ErrProfileNotFound = NewDomainError("profile", "Find", ErrNotFound, "profile not found")
	ErrInvalidXP       = NewDomainError("profile", "Validate", ErrNegativeValue, "xp cannot be negative")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsStorage checks if the error comes from the persistence layer.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
