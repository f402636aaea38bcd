// Package apperr holds the rejection taxonomy shared by the lending packages.
//
// Every rejection carries a stable numeric code. Stores return NotFoundError,
// the policy engine returns PermissionError or ConflictError, and the HTTP
// boundary maps them to status codes. None of them are retryable.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a stable numeric identifier exposed to API clients.
type Code int

const (
	CodeValidation       Code = 400
	CodeNotFound         Code = 404
	CodeNotOwner         Code = 300
	CodeBookUnavailable  Code = 301
	CodeSelfBorrow       Code = 302
	CodeAlreadyBorrowed  Code = 303
	CodeSelfFeedback     Code = 304
	CodeNotBorrowed      Code = 305
	CodeReturnNotPending Code = 306
)

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("no %s found with id %s", e.Entity, e.ID)
}

func (e *NotFoundError) Code() Code { return CodeNotFound }

// Is matches any NotFoundError when the target has no entity, so
// errors.Is(err, ErrNotFound) works for every entity kind.
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return t.Entity == "" || t.Entity == e.Entity
}

// NotFound builds a NotFoundError for entity/id.
func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// PermissionError is returned when the actor does not own the resource an
// owner-only action targets.
type PermissionError struct {
	Action string
	Reason string
}

func (e *PermissionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("you cannot %s: %s", e.Action, e.Reason)
	}
	return "you cannot " + e.Action
}

func (e *PermissionError) Code() Code { return CodeNotOwner }

func (e *PermissionError) Is(target error) bool {
	_, ok := target.(*PermissionError)
	return ok
}

// Forbidden builds a PermissionError for action.
func Forbidden(action, reason string) *PermissionError {
	return &PermissionError{Action: action, Reason: reason}
}

// ConflictError is a rejection caused by the current state of a book or its
// ledger. Two ConflictErrors are considered equal by errors.Is when their
// codes match, so the sentinels below survive rewording and wrapping.
type ConflictError struct {
	code   Code
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func (e *ConflictError) Code() Code { return e.code }

func (e *ConflictError) Is(target error) bool {
	t, ok := target.(*ConflictError)
	return ok && t.code == e.code
}

// WithReason returns a copy of e carrying a context specific message.
func (e *ConflictError) WithReason(reason string) *ConflictError {
	return &ConflictError{code: e.code, Reason: reason}
}

var (
	ErrNotFound = &NotFoundError{}
	ErrNotOwner = &PermissionError{}

	ErrBookUnavailable  = &ConflictError{code: CodeBookUnavailable, Reason: "book is archived or not shareable"}
	ErrSelfBorrow       = &ConflictError{code: CodeSelfBorrow, Reason: "you cannot borrow your own book"}
	ErrAlreadyBorrowed  = &ConflictError{code: CodeAlreadyBorrowed, Reason: "the requested book is already borrowed"}
	ErrSelfFeedback     = &ConflictError{code: CodeSelfFeedback, Reason: "you cannot give feedback on your own book"}
	ErrNotBorrowed      = &ConflictError{code: CodeNotBorrowed, Reason: "you did not borrow this book"}
	ErrReturnNotPending = &ConflictError{code: CodeReturnNotPending, Reason: "the book is not returned yet"}
)

// ValidationError reports invalid client input that passed request decoding.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Code() Code { return CodeValidation }

// Invalid builds a ValidationError.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// CodeOf extracts the stable code from err, or 0 when err carries none.
func CodeOf(err error) Code {
	var coded interface{ Code() Code }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return 0
}
