package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/college-records/internal/model"
	"github.com/deppfellow/college-records/internal/repository"
	"github.com/rs/zerolog"
)

// DeletionNotifier is told about students removed by a bulk delete.
type DeletionNotifier interface {
	NotifyStudentsRemoved(ctx context.Context, reason string, students []model.Student) error
}

// CollegeService is the facade over the student, subject and mark stores.
//
// Writes run in a transaction: the existence checks and the insert either
// all happen or none do. Read results are never nil.
type CollegeService struct {
	logger   *zerolog.Logger
	tx       repository.Transactor
	students repository.StudentStore
	subjects repository.SubjectStore
	marks    repository.MarkStore
	notifier DeletionNotifier
}

// NewCollegeService wires the facade. notifier may be nil.
func NewCollegeService(
	logger *zerolog.Logger,
	tx repository.Transactor,
	students repository.StudentStore,
	subjects repository.SubjectStore,
	marks repository.MarkStore,
	notifier DeletionNotifier,
) *CollegeService {
	return &CollegeService{
		logger:   logger,
		tx:       tx,
		students: students,
		subjects: subjects,
		marks:    marks,
		notifier: notifier,
	}
}

func (s *CollegeService) AddStudent(ctx context.Context, student model.Student) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		exists, err := s.students.Exists(ctx, student.ID)
		if err != nil {
			return err
		}
		if exists {
			return studentAlreadyExists(student.ID)
		}

		if err := s.students.Create(ctx, student); err != nil {
			return err
		}

		s.log(ctx).Info().Int64("student_id", student.ID).Msg("student added")
		return nil
	})
}

func (s *CollegeService) AddSubject(ctx context.Context, subject model.Subject) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		exists, err := s.subjects.Exists(ctx, subject.ID)
		if err != nil {
			return err
		}
		if exists {
			return subjectAlreadyExists(subject.ID)
		}

		if err := s.subjects.Create(ctx, subject); err != nil {
			return err
		}

		s.log(ctx).Info().Int64("subject_id", subject.ID).Msg("subject added")
		return nil
	})
}

// AddMark records a mark and returns it with its assigned id.
func (s *CollegeService) AddMark(ctx context.Context, mark model.Mark) (*model.Mark, error) {
	if !model.ValidValue(mark.Value) {
		return nil, markOutOfRange(mark.Value)
	}

	var created *model.Mark
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		ok, err := s.students.Exists(ctx, mark.StudentID)
		if err != nil {
			return err
		}
		if !ok {
			return studentNotFound(mark.StudentID)
		}

		ok, err = s.subjects.Exists(ctx, mark.SubjectID)
		if err != nil {
			return err
		}
		if !ok {
			return subjectNotFound(mark.SubjectID)
		}

		created, err = s.marks.Create(ctx, mark)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info().
		Int64("mark_id", created.ID).
		Int64("student_id", created.StudentID).
		Int64("subject_id", created.SubjectID).
		Msg("mark added")
	return created, nil
}

func (s *CollegeService) GetStudentMarksSubject(ctx context.Context, name, subjectName string) ([]int, error) {
	return s.marks.ValuesFor(ctx, name, subjectName)
}

func (s *CollegeService) GoodCollegeStudents(ctx context.Context) ([]model.Student, error) {
	return s.students.Good(ctx)
}

// BestStudents returns at most n students; n <= 0 yields none.
func (s *CollegeService) BestStudents(ctx context.Context, n int) ([]model.Student, error) {
	if n <= 0 {
		return []model.Student{}, nil
	}
	return s.students.Best(ctx, n)
}

func (s *CollegeService) BestStudentsSubject(ctx context.Context, n int, subjectName string) ([]model.Student, error) {
	if n <= 0 {
		return []model.Student{}, nil
	}
	return s.students.BestBySubject(ctx, n, subjectName)
}

// SubjectGreatestAvgMark returns nil when no marks exist.
func (s *CollegeService) SubjectGreatestAvgMark(ctx context.Context) (*model.Subject, error) {
	empty, err := s.noMarks(ctx)
	if err != nil || empty {
		return nil, err
	}
	return s.subjects.GreatestAvgMark(ctx)
}

func (s *CollegeService) DeleteStudentsAvgMarkLess(ctx context.Context, threshold int) error {
	var removed []model.Student
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.students.DeleteAvgMarkLess(ctx, threshold)
		return err
	})
	if err != nil {
		return err
	}

	s.log(ctx).Info().
		Int("threshold", threshold).
		Int("removed", len(removed)).
		Msg("removed students with low average")
	s.notify(ctx, fmt.Sprintf("their average mark was below %d or they had no marks", threshold), removed)
	return nil
}

func (s *CollegeService) GetStudentsSubjectMark(ctx context.Context, subjectName string, mark int) ([]string, error) {
	return s.students.NamesWithMarkAtLeast(ctx, subjectName, mark)
}

// DeleteStudentsMarksCountLess removes students with fewer than count marks
// and returns them as they were before removal.
func (s *CollegeService) DeleteStudentsMarksCountLess(ctx context.Context, count int) ([]model.Student, error) {
	var removed []model.Student
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.students.DeleteMarksCountLess(ctx, count)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info().
		Int("count", count).
		Int("removed", len(removed)).
		Msg("removed students with few marks")
	s.notify(ctx, fmt.Sprintf("they had fewer than %d marks", count), removed)
	return removed, nil
}

func (s *CollegeService) SubjectsAvgMarkGreater(ctx context.Context, threshold int) ([]model.Subject, error) {
	return s.subjects.AvgMarkGreater(ctx, threshold)
}

// GetStudentsAllMarksSubject lists students whose every mark on subject is
// at least mark. A student without marks on the subject is not listed.
func (s *CollegeService) GetStudentsAllMarksSubject(ctx context.Context, mark int, subject string) ([]model.Student, error) {
	return s.students.AllMarksAtLeast(ctx, subject, mark)
}

func (s *CollegeService) GetStudentsMaxMarksCount(ctx context.Context) ([]model.Student, error) {
	empty, err := s.noMarks(ctx)
	if err != nil {
		return nil, err
	}
	if empty {
		return []model.Student{}, nil
	}
	return s.students.MaxMarksCount(ctx)
}

func (s *CollegeService) GetSubjectsAvgMarkLess(ctx context.Context, threshold int) ([]model.Subject, error) {
	return s.subjects.AvgMarkLess(ctx, threshold)
}

func (s *CollegeService) noMarks(ctx context.Context) (bool, error) {
	count, err := s.marks.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// notify hands removed students to the notifier. Failures are logged only:
// the delete has already been committed.
func (s *CollegeService) notify(ctx context.Context, reason string, removed []model.Student) {
	if s.notifier == nil || len(removed) == 0 {
		return
	}

	if err := s.notifier.NotifyStudentsRemoved(ctx, reason, removed); err != nil {
		s.log(ctx).Error().Err(err).Int("removed", len(removed)).Msg("failed to report removed students")
	}
}

// log prefers the request-scoped logger carried by ctx.
func (s *CollegeService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}
