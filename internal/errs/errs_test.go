package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestConstructorsDefaultCodes(t *testing.T) {
	assert.Equal(t, "CONFLICT", NewConflictError("x", true, nil).Code)
	assert.Equal(t, http.StatusConflict, NewConflictError("x", true, nil).Status)
	assert.Equal(t, "NOT_FOUND", NewNotFoundError("x", false, nil).Code)
	assert.Equal(t, "BAD_REQUEST", NewBadRequestError("x", false, nil, nil, nil).Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", NewTooManyRequestsError("slow down").Code)

	internal := NewInternalServerError()
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "Internal Server Error", internal.Message)
}

func TestConstructorsCustomCode(t *testing.T) {
	code := "STUDENT_ALREADY_EXISTS"
	err := NewConflictError("Student with id 1 already exists", true, &code)

	assert.Equal(t, code, err.Code)
	assert.True(t, err.Override)
	assert.Equal(t, "Student with id 1 already exists", err.Error())
}

func TestStatusAndCodeOfWrapped(t *testing.T) {
	code := "SUBJECT_NOT_FOUND"
	wrapped := fmt.Errorf("adding mark: %w", NewNotFoundError("missing", true, &code))

	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))
	assert.Equal(t, code, CodeOf(wrapped))
	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	assert.Zero(t, StatusOf(errors.New("plain")))
	assert.Empty(t, CodeOf(errors.New("plain")))
}

func TestWithMessageCopies(t *testing.T) {
	base := NewBadRequestError("original", false, nil, []FieldError{{Field: "id", Error: "is required"}}, nil)
	copied := base.WithMessage("changed")

	assert.Equal(t, "original", base.Message)
	assert.Equal(t, "changed", copied.Message)
	assert.Equal(t, base.Errors, copied.Errors)
}
