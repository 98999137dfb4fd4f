// Package errors defines the structured error taxonomy shared by the
// pipeline packages. Every failure carries a stable code so callers can
// branch on the kind of problem without string matching, plus a details
// payload naming the offending column, types or counts.
package errors

import (
	"fmt"
)

// Error codes for the pipeline error taxonomy.
const (
	CodeEmptyInput        = "EMPTY_INPUT"
	CodeUnsupportedInput  = "UNSUPPORTED_INPUT"
	CodeArityMismatch     = "ARITY_MISMATCH"
	CodeUnresolvableTypes = "UNRESOLVABLE_TYPE_CONFLICT"
	CodeTypeMismatch      = "TYPE_MISMATCH"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeStorage           = "STORAGE_ERROR"
)

// PipelineError is a structured pipeline error.
type PipelineError struct {
	Code    string
	Message string
	Details any
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any PipelineError with the same code, so sentinel values below
// work with errors.Is regardless of message or details.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	return ok && t.Code == e.Code
}

// New creates a PipelineError with the given code and message.
func New(code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// NewWithDetails creates a PipelineError with an additional details payload.
func NewWithDetails(code, message string, details any) *PipelineError {
	return &PipelineError{Code: code, Message: message, Details: details}
}

// Predefined sentinels for errors.Is checks.
var (
	ErrEmptyInput        = New(CodeEmptyInput, "no tables to concatenate")
	ErrUnsupportedInput  = New(CodeUnsupportedInput, "input is not a supported table collection")
	ErrArityMismatch     = New(CodeArityMismatch, "key, tag-name and table counts disagree")
	ErrUnresolvableTypes = New(CodeUnresolvableTypes, "column has incompatible types across sources")
	ErrTypeMismatch      = New(CodeTypeMismatch, "no resolved type for column")
	ErrConfigInvalid     = New(CodeConfigInvalid, "configuration is invalid")
	ErrStorage           = New(CodeStorage, "storage operation failed")
)

// TypeConflictDetails names the column and types behind an unresolvable
// conflict.
type TypeConflictDetails struct {
	Column string
	Types  []string
}

func (d TypeConflictDetails) String() string {
	return fmt.Sprintf("column %q observed as %v", d.Column, d.Types)
}

// EmptyInput creates an empty-input error.
func EmptyInput() *PipelineError {
	return New(CodeEmptyInput, "no tables to concatenate")
}

// UnsupportedInput creates an unsupported-input error with a description of
// the offending element.
func UnsupportedInput(detail string) *PipelineError {
	return NewWithDetails(CodeUnsupportedInput, "input is not a supported table collection", detail)
}

// ArityMismatch creates an arity error with a description of the mismatch.
func ArityMismatch(detail string) *PipelineError {
	return NewWithDetails(CodeArityMismatch, "key, tag-name and table counts disagree", detail)
}

// UnresolvableConflict creates a type-conflict error naming the column and
// the observed types.
func UnresolvableConflict(column string, types []string) *PipelineError {
	return NewWithDetails(CodeUnresolvableTypes,
		"column has incompatible types across sources",
		TypeConflictDetails{Column: column, Types: types})
}

// TypeMismatch signals a missing resolved type during the cast/fill pass.
// Reaching it means conflict resolution did not run for the column and is a
// logic bug, not a data problem.
func TypeMismatch(column string) *PipelineError {
	return NewWithDetails(CodeTypeMismatch, "no resolved type for column", column)
}

// ConfigInvalid creates a configuration error naming the offending field.
func ConfigInvalid(field, reason string) *PipelineError {
	return NewWithDetails(CodeConfigInvalid, "configuration is invalid",
		fmt.Sprintf("%s: %s", field, reason))
}

// Storage wraps a storage collaborator failure.
func Storage(op string, err error) *PipelineError {
	return NewWithDetails(CodeStorage, "storage operation failed",
		fmt.Sprintf("%s: %v", op, err))
}
