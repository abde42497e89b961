package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/college-records/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"application error", errs.NewConflictError("taken", true, nil), http.StatusConflict},
		{"wrapped application error", fmt.Errorf("add: %w", errs.NewNotFoundError("missing", true, nil)), http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "students_pkey", TableName: "students"}, http.StatusConflict},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{"anything else", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, toHTTPError(tt.err).Status)
		})
	}
}

func TestToHTTPError_HidesInternalMessage(t *testing.T) {
	httpErr := toHTTPError(fmt.Errorf("dial tcp 10.0.0.1:5432: connection refused"))

	assert.Equal(t, http.StatusText(http.StatusInternalServerError), httpErr.Message)
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("reuses upstream id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()

		assert.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, "abc-123", rec.Body.String())
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
		rec := httptest.NewRecorder()

		assert.NoError(t, handler(e.NewContext(req, rec)))
		assert.Len(t, rec.Body.String(), 36)
	})
}
