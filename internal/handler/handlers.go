package handler

import (
	"io/fs"

	"github.com/deppfellow/college-records/internal/server"
	"github.com/deppfellow/college-records/internal/service"
)

// Handlers groups every HTTP handler so the router receives one object.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Students *StudentHandler
	Subjects *SubjectHandler
	Marks    *MarkHandler
}

// NewHandlers builds the handlers; assets holds openapi.html.
func NewHandlers(s *server.Server, services *service.Services, assets fs.FS) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s, assets),
		Students: NewStudentHandler(s, services.College),
		Subjects: NewSubjectHandler(s, services.College),
		Marks:    NewMarkHandler(s, services.College),
	}
}
