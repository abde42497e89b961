package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/college-records/internal/errs"
	"github.com/deppfellow/college-records/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, target, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_Valid(t *testing.T) {
	c := newContext(http.MethodPost, "/api/v1/marks", `{"studentId":1,"subjectId":10,"mark":0}`)
	payload := &model.AddMarkPayload{}

	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, model.Mark{StudentID: 1, SubjectID: 10, Value: 0}, payload.ToMark())
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	c := newContext(http.MethodPost, "/api/v1/marks", `{"studentId":1,"mark":101}`)

	err := BindAndValidate(c, &model.AddMarkPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.True(t, httpErr.Override)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "subjectid", Error: "is required"},
		{Field: "mark", Error: "must not exceed 100"},
	}, httpErr.Errors)
}

func TestBindAndValidate_MissingMarkIsRequired(t *testing.T) {
	c := newContext(http.MethodPost, "/api/v1/marks", `{"studentId":1,"subjectId":2}`)

	err := BindAndValidate(c, &model.AddMarkPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, []errs.FieldError{{Field: "mark", Error: "is required"}}, httpErr.Errors)
}

func TestBindAndValidate_StringLength(t *testing.T) {
	c := newContext(http.MethodPost, "/api/v1/students", `{"id":1,"name":""}`)

	err := BindAndValidate(c, &model.AddStudentPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, httpErr.Errors)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	c := newContext(http.MethodPost, "/api/v1/students", `{"id":"x"`)

	err := BindAndValidate(c, &model.AddStudentPayload{})

	assert.Equal(t, http.StatusBadRequest, errs.StatusOf(err))
	assert.Empty(t, err.(*errs.HTTPError).Errors)
}

func TestBindAndValidate_QueryParams(t *testing.T) {
	c := newContext(http.MethodGet, "/api/v1/students/best?n=3&subject=Math", "")
	q := &model.BestStudentsQuery{}

	require.NoError(t, BindAndValidate(c, q))
	assert.Equal(t, 3, q.N)
	assert.Equal(t, "Math", q.Subject)
}

func TestBindAndValidate_BadQueryNumber(t *testing.T) {
	c := newContext(http.MethodGet, "/api/v1/students/best?n=abc", "")

	err := BindAndValidate(c, &model.BestStudentsQuery{})
	assert.Equal(t, http.StatusBadRequest, errs.StatusOf(err))
}

func TestBindAndValidate_BadQueryNumberNamesField(t *testing.T) {
	c := newContext(http.MethodDelete, "/api/v1/students/avg-mark-less?threshold=abc", "")

	err := BindAndValidate(c, &model.ThresholdQuery{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.NotContains(t, httpErr.Message, "strconv")
	assert.Equal(t, []errs.FieldError{{Field: "threshold", Error: "must be an integer"}}, httpErr.Errors)
}

func TestBindAndValidate_BadQueryNumberAmongValidOnes(t *testing.T) {
	c := newContext(http.MethodGet, "/api/v1/students/all-marks?subject=Math&mark=1e3", "")

	err := BindAndValidate(c, &model.SubjectMarkQuery{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, []errs.FieldError{{Field: "mark", Error: "must be an integer"}}, httpErr.Errors)
}

func TestBindAndValidate_BodyTypeMismatchNamesField(t *testing.T) {
	c := newContext(http.MethodPost, "/api/v1/marks", `{"studentId":1,"subjectId":10,"mark":"ninety"}`)

	err := BindAndValidate(c, &model.AddMarkPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, []errs.FieldError{{Field: "mark", Error: "must be an integer"}}, httpErr.Errors)
}

func TestExtractValidationError_Custom(t *testing.T) {
	msg, fieldErrors := extractValidationError(CustomValidationErrors{{Field: "mark", Message: "out of range"}})

	assert.Equal(t, "Validation failed", msg)
	assert.Equal(t, []errs.FieldError{{Field: "mark", Error: "out of range"}}, fieldErrors)
}
