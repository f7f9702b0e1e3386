// Package apperr defines the typed failures returned by the store and
// aggregator so the HTTP layer can map them to responses.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// FieldError names one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports missing, empty or malformed input. Nothing is
// persisted when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a field failure.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns e when at least one field failed, nil otherwise.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// AsValidation unwraps a ValidationError from err
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// ReferenceError is returned when a show points at a venue or artist that
// does not exist.
type ReferenceError struct {
	Entity string
	ID     uint
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Entity, e.ID)
}

// ConflictOnDeleteError is returned when deleting a venue or artist that
// still has shows.
type ConflictOnDeleteError struct {
	Entity string
	ID     uint
	Shows  int64
}

func (e *ConflictOnDeleteError) Error() string {
	return fmt.Sprintf("%s %d still has %d show(s)", e.Entity, e.ID, e.Shows)
}

// StorageError wraps an unexpected database failure. The transaction it
// happened in has been rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps err as a StorageError unless it already belongs to the
// taxonomy.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != "storage" {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// Kind classifies err for logging and metrics.
func Kind(err error) string {
	var (
		ve *ValidationError
		re *ReferenceError
		ce *ConflictOnDeleteError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &re):
		return "reference"
	case errors.As(err, &ce):
		return "conflict_on_delete"
	default:
		return "storage"
	}
}
