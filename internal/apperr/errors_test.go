package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConflictError_IsMatchesByCode(t *testing.T) {
	err := ErrBookUnavailable.WithReason("cannot be borrowed since it is archived or not shareable")

	assert.ErrorIs(t, err, ErrBookUnavailable)
	assert.NotErrorIs(t, err, ErrSelfBorrow)
	assert.Equal(t, "cannot be borrowed since it is archived or not shareable", err.Error())

	wrapped := fmt.Errorf("borrow book 7: %w", err)
	assert.ErrorIs(t, wrapped, ErrBookUnavailable)
	assert.Equal(t, CodeBookUnavailable, CodeOf(wrapped))
}

func TestNotFoundError_Is(t *testing.T) {
	err := fmt.Errorf("load: %w", NotFound("book", "42"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, &NotFoundError{Entity: "book"})
	assert.NotErrorIs(t, err, &NotFoundError{Entity: "feedback"})
	assert.Equal(t, "no book found with id 42", errors.Unwrap(err).Error())
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestPermissionError(t *testing.T) {
	err := Forbidden("update shareable status", "")

	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, "you cannot update shareable status", err.Error())
	assert.Equal(t, CodeNotOwner, CodeOf(err))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, Code(0), CodeOf(errors.New("boom")))
	assert.Equal(t, CodeValidation, CodeOf(Invalid("rating", "must be between 0 and 5")))
}
