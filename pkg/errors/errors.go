// Package errors defines the service error taxonomy.
//
// Every failure the store can report maps to exactly one of the types below,
// so the HTTP layer can translate errors to status codes without string
// matching: ResourceNotFoundError -> 404, ResourceConflictError and
// ValidationError -> 400, StorageError -> 500.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Violation rules reported by ValidationError.
const (
	RuleMissing    = "missing"
	RuleOutOfRange = "out-of-range"
	RuleWrongType  = "wrong-type"
	RuleMismatch   = "mismatch"
)

// FieldViolation describes a single validation failure on one field.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Rule)
}

// ResourceNotFoundError indicates the referenced resource does not exist.
type ResourceNotFoundError struct {
	Resource string
	ID       int
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NewCallNotFoundError(id int) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: "call record", ID: id}
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// ResourceConflictError indicates a create collided with an existing resource.
type ResourceConflictError struct {
	Resource string
	ID       int
}

func (e *ResourceConflictError) Error() string {
	return fmt.Sprintf("%s %d already exists", e.Resource, e.ID)
}

func NewDuplicateCallError(id int) *ResourceConflictError {
	return &ResourceConflictError{Resource: "call record", ID: id}
}

func IsResourceConflictError(err error) bool {
	var e *ResourceConflictError
	return errors.As(err, &e)
}

// ValidationError carries every field violation found in a candidate record.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// StorageError indicates the backing file could not be read or written. The
// previously committed file state remains authoritative.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func IsStorageError(err error) bool {
	var e *StorageError
	return errors.As(err, &e)
}
