// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, enforces the record rules and calls
// repository methods to read and write the college records.
package service

import (
	"github.com/deppfellow/college-records/internal/lib/job"
	"github.com/deppfellow/college-records/internal/repository"
	"github.com/deppfellow/college-records/internal/server"
)

type Services struct {
	College *CollegeService
	Job     *job.JobService
}

// NewService builds the services. Removal reports are enqueued only when
// the job queue runs and a registrar address is configured.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier DeletionNotifier
	if s.Job != nil && s.Config.Integration.NoticesEnabled() {
		notifier = s.Job
	}

	college := NewCollegeService(
		s.Logger,
		repos.Tx,
		repos.Students,
		repos.Subjects,
		repos.Marks,
		notifier,
	)

	return &Services{
		College: college,
		Job:     s.Job,
	}, nil
}
