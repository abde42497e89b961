package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/college-records/internal/config"
	"github.com/deppfellow/college-records/internal/errs"
	"github.com/deppfellow/college-records/internal/handler"
	"github.com/deppfellow/college-records/internal/model"
	"github.com/deppfellow/college-records/internal/repository/memstore"
	"github.com/deppfellow/college-records/internal/router"
	"github.com/deppfellow/college-records/internal/server"
	"github.com/deppfellow/college-records/internal/service"
	"github.com/deppfellow/college-records/static"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:      "0",
				RateLimit: 1000,
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func newTestRouter(t *testing.T, dbProbe handler.Probe) *echo.Echo {
	t.Helper()

	s := testServer()
	store := memstore.New()
	college := service.NewCollegeService(s.Logger, store, store.Students(), store.Subjects(), store.Marks(), nil)

	h := handler.NewHandlers(s, &service.Services{College: college}, static.FS)
	h.Health = handler.NewHealthHandlerWithProbes(s, map[string]handler.Probe{
		config.HealthCheckDatabase: dbProbe,
	})

	return router.NewRouter(s, h, static.FS)
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func healthy(context.Context) error { return nil }

// seed loads Ann(1) and Bob(2) on Math(10) with marks 90 and 60, plus Cid(3)
// without marks.
func seed(t *testing.T, e *echo.Echo) {
	t.Helper()

	for _, body := range []string{
		`{"id":1,"name":"Ann"}`,
		`{"id":2,"name":"Bob"}`,
		`{"id":3,"name":"Cid"}`,
	} {
		rec := do(t, e, http.MethodPost, "/api/v1/students", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, e, http.MethodPost, "/api/v1/subjects", `{"id":10,"subjectName":"Math"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, body := range []string{
		`{"studentId":1,"subjectId":10,"mark":90}`,
		`{"studentId":2,"subjectId":10,"mark":60}`,
	} {
		rec := do(t, e, http.MethodPost, "/api/v1/marks", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestAddStudent_Created(t *testing.T) {
	e := newTestRouter(t, healthy)

	rec := do(t, e, http.MethodPost, "/api/v1/students", `{"id":7,"name":"Ann"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.Student{ID: 7, Name: "Ann"}, decode[model.Student](t, rec))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAddStudent_Duplicate(t *testing.T) {
	e := newTestRouter(t, healthy)

	require.Equal(t, http.StatusCreated, do(t, e, http.MethodPost, "/api/v1/students", `{"id":7,"name":"Ann"}`).Code)
	rec := do(t, e, http.MethodPost, "/api/v1/students", `{"id":7,"name":"Ann"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, service.CodeStudentAlreadyExists, decode[errs.HTTPError](t, rec).Code)
}

func TestAddStudent_ValidationErrors(t *testing.T) {
	e := newTestRouter(t, healthy)

	rec := do(t, e, http.MethodPost, "/api/v1/students", `{"id":0,"name":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	fields := map[string]bool{}
	for _, fe := range body.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["id"])
	assert.True(t, fields["name"])
}

func TestAddMark_Errors(t *testing.T) {
	e := newTestRouter(t, healthy)
	seed(t, e)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"unknown student", `{"studentId":99,"subjectId":10,"mark":50}`, http.StatusNotFound},
		{"unknown subject", `{"studentId":1,"subjectId":99,"mark":50}`, http.StatusNotFound},
		{"above range", `{"studentId":1,"subjectId":10,"mark":101}`, http.StatusBadRequest},
		{"missing mark", `{"studentId":1,"subjectId":10}`, http.StatusBadRequest},
		{"malformed", `{"studentId":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/api/v1/marks", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestAddMark_ZeroIsAccepted(t *testing.T) {
	e := newTestRouter(t, healthy)
	seed(t, e)

	rec := do(t, e, http.MethodPost, "/api/v1/marks", `{"studentId":3,"subjectId":10,"mark":0}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	mark := decode[model.Mark](t, rec)
	assert.NotZero(t, mark.ID)
	assert.Equal(t, 0, mark.Value)
}

func TestQueries(t *testing.T) {
	e := newTestRouter(t, healthy)
	seed(t, e)

	t.Run("marks of student on subject", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/marks?student=Ann&subject=Math", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []int{90}, decode[[]int](t, rec))
	})

	t.Run("good students", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/students/good", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []model.Student{{ID: 1, Name: "Ann"}}, decode[[]model.Student](t, rec))
	})

	t.Run("best students", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/students/best?n=1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []model.Student{{ID: 1, Name: "Ann"}}, decode[[]model.Student](t, rec))
	})

	t.Run("best students on subject", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/students/best?n=5&subject=Math", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []model.Student{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bob"}}, decode[[]model.Student](t, rec))
	})

	t.Run("names with mark", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/students/names?subject=Math&mark=60", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"Ann", "Bob"}, decode[[]string](t, rec))
	})

	t.Run("all marks at least", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/students/all-marks?subject=Math&mark=70", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []model.Student{{ID: 1, Name: "Ann"}}, decode[[]model.Student](t, rec))
	})

	t.Run("max marks count", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/students/max-marks-count", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []model.Student{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bob"}}, decode[[]model.Student](t, rec))
	})

	t.Run("greatest average subject", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/subjects/greatest-avg-mark", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, model.Subject{ID: 10, SubjectName: "Math"}, decode[model.Subject](t, rec))
	})

	t.Run("subjects above average", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/subjects/avg-mark-greater?threshold=75", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]model.Subject](t, rec))
	})

	t.Run("subjects below average", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/subjects/avg-mark-less?threshold=76", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []model.Subject{{ID: 10, SubjectName: "Math"}}, decode[[]model.Subject](t, rec))
	})

	t.Run("bad query type", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/students/best?n=many", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEmptyCollege(t *testing.T) {
	e := newTestRouter(t, healthy)

	rec := do(t, e, http.MethodGet, "/api/v1/subjects/greatest-avg-mark", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = do(t, e, http.MethodGet, "/api/v1/students/max-marks-count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestDeleteAvgMarkLess(t *testing.T) {
	e := newTestRouter(t, healthy)
	seed(t, e)

	rec := do(t, e, http.MethodDelete, "/api/v1/students/avg-mark-less?threshold=70", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// Bob (60) and Cid (no marks) are gone.
	rec = do(t, e, http.MethodGet, "/api/v1/students/best?n=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []model.Student{{ID: 1, Name: "Ann"}}, decode[[]model.Student](t, rec))
}

func TestDeleteMarksCountLess(t *testing.T) {
	e := newTestRouter(t, healthy)
	seed(t, e)

	rec := do(t, e, http.MethodDelete, "/api/v1/students/marks-count-less?count=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []model.Student{{ID: 3, Name: "Cid"}}, decode[[]model.Student](t, rec))
}

func TestMissingNumericParams(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		field  string
	}{
		{"delete by average", http.MethodDelete, "/api/v1/students/avg-mark-less", "threshold"},
		{"delete by count", http.MethodDelete, "/api/v1/students/marks-count-less", "count"},
		{"all marks", http.MethodGet, "/api/v1/students/all-marks?subject=Math", "mark"},
		{"names", http.MethodGet, "/api/v1/students/names?subject=Math", "mark"},
		{"subjects above average", http.MethodGet, "/api/v1/subjects/avg-mark-greater", "threshold"},
		{"subjects below average", http.MethodGet, "/api/v1/subjects/avg-mark-less", "threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestRouter(t, healthy)
			seed(t, e)

			rec := do(t, e, tt.method, tt.target, "")

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, []errs.FieldError{{Field: tt.field, Error: "is required"}}, decode[errs.HTTPError](t, rec).Errors)

			// Nothing was removed: Cid is still the only student without marks.
			rec = do(t, e, http.MethodDelete, "/api/v1/students/marks-count-less?count=1", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []model.Student{{ID: 3, Name: "Cid"}}, decode[[]model.Student](t, rec))
		})
	}
}

func TestExplicitZeroCount(t *testing.T) {
	e := newTestRouter(t, healthy)
	seed(t, e)

	rec := do(t, e, http.MethodDelete, "/api/v1/students/marks-count-less?count=0", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestMalformedNumericParam(t *testing.T) {
	e := newTestRouter(t, healthy)
	seed(t, e)

	rec := do(t, e, http.MethodDelete, "/api/v1/students/avg-mark-less?threshold=abc", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "strconv")
	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, []errs.FieldError{{Field: "threshold", Error: "must be an integer"}}, body.Errors)
}

func TestUnknownRoute(t *testing.T) {
	e := newTestRouter(t, healthy)

	rec := do(t, e, http.MethodGet, "/api/v1/courses", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)
}

func TestStatus(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		e := newTestRouter(t, healthy)
		rec := do(t, e, http.MethodGet, "/status", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.Equal(t, "healthy", body["status"])
		checks := body["checks"].(map[string]any)
		assert.Equal(t, "disabled", checks[config.HealthCheckRedis].(map[string]any)["status"])
	})

	t.Run("database down", func(t *testing.T) {
		e := newTestRouter(t, func(context.Context) error { return errors.New("connection refused") })
		rec := do(t, e, http.MethodGet, "/status", "")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.Equal(t, "unhealthy", body["status"])
	})
}

func TestDocs(t *testing.T) {
	e := newTestRouter(t, healthy)

	rec := do(t, e, http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")

	rec = do(t, e, http.MethodGet, "/static/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/students/avg-mark-less")
}
