package handler

import (
	"github.com/deppfellow/college-records/internal/model"
	"github.com/deppfellow/college-records/internal/server"
	"github.com/deppfellow/college-records/internal/service"
	"github.com/labstack/echo/v4"
)

type StudentHandler struct {
	Handler
	college *service.CollegeService
}

func NewStudentHandler(s *server.Server, college *service.CollegeService) *StudentHandler {
	return &StudentHandler{
		Handler: NewHandler(s),
		college: college,
	}
}

func (h *StudentHandler) AddStudent(c echo.Context, payload *model.AddStudentPayload) (*model.Student, error) {
	student := payload.ToStudent()
	if err := h.college.AddStudent(c.Request().Context(), student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (h *StudentHandler) GoodStudents(c echo.Context, _ *model.EmptyRequest) ([]model.Student, error) {
	return h.college.GoodCollegeStudents(c.Request().Context())
}

// BestStudents ranks globally, or on one subject when ?subject= is given.
func (h *StudentHandler) BestStudents(c echo.Context, q *model.BestStudentsQuery) ([]model.Student, error) {
	if q.Subject != "" {
		return h.college.BestStudentsSubject(c.Request().Context(), q.N, q.Subject)
	}
	return h.college.BestStudents(c.Request().Context(), q.N)
}

func (h *StudentHandler) NamesWithMark(c echo.Context, q *model.SubjectMarkQuery) ([]string, error) {
	return h.college.GetStudentsSubjectMark(c.Request().Context(), q.Subject, *q.Mark)
}

func (h *StudentHandler) AllMarksAtLeast(c echo.Context, q *model.SubjectMarkQuery) ([]model.Student, error) {
	return h.college.GetStudentsAllMarksSubject(c.Request().Context(), *q.Mark, q.Subject)
}

func (h *StudentHandler) MaxMarksCount(c echo.Context, _ *model.EmptyRequest) ([]model.Student, error) {
	return h.college.GetStudentsMaxMarksCount(c.Request().Context())
}

func (h *StudentHandler) DeleteAvgMarkLess(c echo.Context, q *model.ThresholdQuery) error {
	return h.college.DeleteStudentsAvgMarkLess(c.Request().Context(), *q.Threshold)
}

// DeleteMarksCountLess responds with the removed students.
func (h *StudentHandler) DeleteMarksCountLess(c echo.Context, q *model.CountQuery) ([]model.Student, error) {
	return h.college.DeleteStudentsMarksCountLess(c.Request().Context(), *q.Count)
}
