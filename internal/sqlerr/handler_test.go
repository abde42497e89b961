package sqlerr

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/college-records/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("SOMETHING"))
}

func TestHandleError_UniqueViolationOnPrimaryKey(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "students_pkey"`,
		TableName:      "students",
		ConstraintName: "students_pkey",
	}

	err := HandleError(fmt.Errorf("insert student: %w", pgErr))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "STUDENT_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A student with this identifier already exists", httpErr.Message)
}

func TestHandleError_ForeignKeyViolationNamesReferencedEntity(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		TableName:      "marks",
		ConstraintName: "marks_subject_id_fkey",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "SUBJECT_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced subject does not exist", httpErr.Message)
}

func TestHandleError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23514",
		TableName:      "marks",
		ColumnName:     "mark",
		ConstraintName: "marks_mark_range",
	}

	err := HandleError(pgErr)

	assert.Equal(t, http.StatusBadRequest, errs.StatusOf(err))
	assert.Equal(t, "MARK_INVALID", errs.CodeOf(err))
}

func TestHandleError_NotNullViolationCarriesFieldError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		TableName:  "students",
		ColumnName: "name",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
	assert.Equal(t, "The Name is required", httpErr.Message)
}

func TestHandleError_NoRows(t *testing.T) {
	err := HandleError(fmt.Errorf("find subject: %w", pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))
	assert.Equal(t, "Resource not found", err.Error())

	err = HandleError(sql.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))
	assert.Equal(t, "Resource not found", err.Error())
}

func TestHandleError_PassesThroughHTTPError(t *testing.T) {
	original := errs.NewBadRequestError("bad", false, nil, nil, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownIsInternal(t *testing.T) {
	err := HandleError(fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, errs.StatusOf(err))
}

func TestExtractColumnHelpers(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Empty(t, extractColumnForUniqueViolation("students_pkey"))

	assert.Equal(t, "student_id", extractColumnForForeignKeyViolation("marks_student_id_fkey"))
	assert.Empty(t, extractColumnForForeignKeyViolation("marks_pkey"))
}
