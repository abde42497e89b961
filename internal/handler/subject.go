package handler

import (
	"github.com/deppfellow/college-records/internal/model"
	"github.com/deppfellow/college-records/internal/server"
	"github.com/deppfellow/college-records/internal/service"
	"github.com/labstack/echo/v4"
)

type SubjectHandler struct {
	Handler
	college *service.CollegeService
}

func NewSubjectHandler(s *server.Server, college *service.CollegeService) *SubjectHandler {
	return &SubjectHandler{
		Handler: NewHandler(s),
		college: college,
	}
}

func (h *SubjectHandler) AddSubject(c echo.Context, payload *model.AddSubjectPayload) (*model.Subject, error) {
	subject := payload.ToSubject()
	if err := h.college.AddSubject(c.Request().Context(), subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// GreatestAvgMark responds with JSON null when there are no marks.
func (h *SubjectHandler) GreatestAvgMark(c echo.Context, _ *model.EmptyRequest) (*model.Subject, error) {
	return h.college.SubjectGreatestAvgMark(c.Request().Context())
}

func (h *SubjectHandler) AvgMarkGreater(c echo.Context, q *model.ThresholdQuery) ([]model.Subject, error) {
	return h.college.SubjectsAvgMarkGreater(c.Request().Context(), *q.Threshold)
}

func (h *SubjectHandler) AvgMarkLess(c echo.Context, q *model.ThresholdQuery) ([]model.Subject, error) {
	return h.college.GetSubjectsAvgMarkLess(c.Request().Context(), *q.Threshold)
}
