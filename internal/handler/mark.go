package handler

import (
	"github.com/deppfellow/college-records/internal/model"
	"github.com/deppfellow/college-records/internal/server"
	"github.com/deppfellow/college-records/internal/service"
	"github.com/labstack/echo/v4"
)

type MarkHandler struct {
	Handler
	college *service.CollegeService
}

func NewMarkHandler(s *server.Server, college *service.CollegeService) *MarkHandler {
	return &MarkHandler{
		Handler: NewHandler(s),
		college: college,
	}
}

func (h *MarkHandler) AddMark(c echo.Context, payload *model.AddMarkPayload) (*model.Mark, error) {
	return h.college.AddMark(c.Request().Context(), payload.ToMark())
}

// StudentMarks lists the mark values a student holds on a subject.
func (h *MarkHandler) StudentMarks(c echo.Context, q *model.StudentMarksQuery) ([]int, error) {
	return h.college.GetStudentMarksSubject(c.Request().Context(), q.Student, q.Subject)
}
