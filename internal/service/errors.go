package service

import (
	"fmt"

	"github.com/deppfellow/college-records/internal/errs"
	"github.com/deppfellow/college-records/internal/model"
)

// Error codes returned by CollegeService.
const (
	CodeStudentAlreadyExists = "STUDENT_ALREADY_EXISTS"
	CodeSubjectAlreadyExists = "SUBJECT_ALREADY_EXISTS"
	CodeStudentNotFound      = "STUDENT_NOT_FOUND"
	CodeSubjectNotFound      = "SUBJECT_NOT_FOUND"
	CodeMarkOutOfRange       = "MARK_OUT_OF_RANGE"
)

func studentAlreadyExists(id int64) error {
	code := CodeStudentAlreadyExists
	return errs.NewConflictError(fmt.Sprintf("Student with id %d already exists", id), true, &code)
}

func subjectAlreadyExists(id int64) error {
	code := CodeSubjectAlreadyExists
	return errs.NewConflictError(fmt.Sprintf("Subject with id %d already exists", id), true, &code)
}

func studentNotFound(id int64) error {
	code := CodeStudentNotFound
	return errs.NewNotFoundError(fmt.Sprintf("Student with id %d not found", id), true, &code)
}

func subjectNotFound(id int64) error {
	code := CodeSubjectNotFound
	return errs.NewNotFoundError(fmt.Sprintf("Subject with id %d not found", id), true, &code)
}

func markOutOfRange(value int) error {
	code := CodeMarkOutOfRange
	return errs.NewBadRequestError(
		fmt.Sprintf("Mark %d is outside %d..%d", value, model.MinMark, model.MaxMark),
		true,
		&code,
		[]errs.FieldError{{Field: "mark", Error: fmt.Sprintf("must be between %d and %d", model.MinMark, model.MaxMark)}},
		nil,
	)
}
