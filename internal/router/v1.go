package router

import (
	"net/http"

	"github.com/deppfellow/college-records/internal/handler"
	"github.com/deppfellow/college-records/internal/model"
	"github.com/labstack/echo/v4"
)

func registerStudentRoutes(g *echo.Group, h *handler.Handlers) {
	s := h.Students
	students := g.Group("/students")

	students.POST("", handler.Handle(s.Handler, s.AddStudent, http.StatusCreated, &model.AddStudentPayload{}))
	students.GET("/good", handler.Handle(s.Handler, s.GoodStudents, http.StatusOK, &model.EmptyRequest{}))
	students.GET("/best", handler.Handle(s.Handler, s.BestStudents, http.StatusOK, &model.BestStudentsQuery{}))
	students.GET("/names", handler.Handle(s.Handler, s.NamesWithMark, http.StatusOK, &model.SubjectMarkQuery{}))
	students.GET("/all-marks", handler.Handle(s.Handler, s.AllMarksAtLeast, http.StatusOK, &model.SubjectMarkQuery{}))
	students.GET("/max-marks-count", handler.Handle(s.Handler, s.MaxMarksCount, http.StatusOK, &model.EmptyRequest{}))

	students.DELETE("/avg-mark-less", handler.HandleNoContent(s.Handler, s.DeleteAvgMarkLess, http.StatusNoContent, &model.ThresholdQuery{}))
	students.DELETE("/marks-count-less", handler.Handle(s.Handler, s.DeleteMarksCountLess, http.StatusOK, &model.CountQuery{}))
}

func registerSubjectRoutes(g *echo.Group, h *handler.Handlers) {
	s := h.Subjects
	subjects := g.Group("/subjects")

	subjects.POST("", handler.Handle(s.Handler, s.AddSubject, http.StatusCreated, &model.AddSubjectPayload{}))
	subjects.GET("/greatest-avg-mark", handler.Handle(s.Handler, s.GreatestAvgMark, http.StatusOK, &model.EmptyRequest{}))
	subjects.GET("/avg-mark-greater", handler.Handle(s.Handler, s.AvgMarkGreater, http.StatusOK, &model.ThresholdQuery{}))
	subjects.GET("/avg-mark-less", handler.Handle(s.Handler, s.AvgMarkLess, http.StatusOK, &model.ThresholdQuery{}))
}

func registerMarkRoutes(g *echo.Group, h *handler.Handlers) {
	m := h.Marks
	marks := g.Group("/marks")

	marks.POST("", handler.Handle(m.Handler, m.AddMark, http.StatusCreated, &model.AddMarkPayload{}))
	marks.GET("", handler.Handle(m.Handler, m.StudentMarks, http.StatusOK, &model.StudentMarksQuery{}))
}
