package apperrors

import (
	"errors"
	"fmt"
)

// Domain error kinds. Every error leaving the core wraps exactly one of
// these sentinels so callers can dispatch with errors.Is.
var (
	// ErrValidation covers field-level failures on entity construction or mutation.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateKey is a primary-key collision on create or rename.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrDuplicateRelation means the relationship already exists.
	ErrDuplicateRelation = errors.New("relationship already exists")

	// ErrNotFound means a referenced ID is absent from the store.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a relationship slot is already occupied by a different party.
	ErrConflict = errors.New("conflict")

	// ErrStorage wraps unexpected failures of the underlying store.
	ErrStorage = errors.New("storage failure")
)

// ValidationError identifies the offending field and the violated rule.
type ValidationError struct {
	Field string
	Rule  string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Rule)
}

// Unwrap makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, rule string) error {
	return &ValidationError{Field: field, Rule: rule}
}

// DomainError carries a human-readable message on top of a sentinel kind.
type DomainError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) error {
	return &DomainError{Err: ErrNotFound, Message: message}
}

// NewDuplicateKeyError creates a primary-key collision error with a message.
func NewDuplicateKeyError(message string) error {
	return &DomainError{Err: ErrDuplicateKey, Message: message}
}

// NewDuplicateRelationError creates a duplicate-relationship error with a message.
func NewDuplicateRelationError(message string) error {
	return &DomainError{Err: ErrDuplicateRelation, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) error {
	return &DomainError{Err: ErrConflict, Message: message}
}

// NewStorageError wraps an unexpected storage failure, keeping the cause
// reachable through errors.Unwrap.
func NewStorageError(cause error, message string) error {
	return &DomainError{
		Err:     fmt.Errorf("%w: %w", ErrStorage, cause),
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
