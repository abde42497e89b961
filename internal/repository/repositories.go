package repository

import (
	"github.com/deppfellow/college-records/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Tx       Transactor
	Students *StudentRepository
	Subjects *SubjectRepository
	Marks    *MarkRepository
}

// NewRepositories builds every repository on the server's shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Tx:       s.DB,
		Students: NewStudentRepository(s.DB),
		Subjects: NewSubjectRepository(s.DB),
		Marks:    NewMarkRepository(s.DB),
	}
}
