// Package memstore is an in-memory implementation of the repository
// stores for tests.
//
// It mirrors the PostgreSQL semantics, including the driver errors: a
// duplicate id yields a unique violation and a mark pointing at a missing
// row yields a foreign key violation, both as *pgconn.PgError, so callers
// see the same mapping through sqlerr.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/deppfellow/college-records/internal/model"
	"github.com/deppfellow/college-records/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store holds all three tables. Use Students, Subjects and Marks for the
// individual stores; Store itself is the Transactor.
type Store struct {
	txMu sync.Mutex

	mu         sync.RWMutex
	students   map[int64]model.Student
	subjects   map[int64]model.Subject
	marks      []model.Mark
	nextMarkID int64
}

func New() *Store {
	return &Store{
		students:   make(map[int64]model.Student),
		subjects:   make(map[int64]model.Subject),
		nextMarkID: 1,
	}
}

var _ repository.Transactor = (*Store)(nil)

type txKey struct{}

// WithTx serializes transactions and restores the previous contents when
// fn fails. Writes made outside a transaction while one runs are lost on
// rollback.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	students   map[int64]model.Student
	subjects   map[int64]model.Subject
	marks      []model.Mark
	nextMarkID int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		students:   make(map[int64]model.Student, len(s.students)),
		subjects:   make(map[int64]model.Subject, len(s.subjects)),
		marks:      append([]model.Mark(nil), s.marks...),
		nextMarkID: s.nextMarkID,
	}
	for id, st := range s.students {
		snap.students[id] = st
	}
	for id, sb := range s.subjects {
		snap.subjects[id] = sb
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.students = snap.students
	s.subjects = snap.subjects
	s.marks = snap.marks
	s.nextMarkID = snap.nextMarkID
}

func (s *Store) Students() *Students { return &Students{s: s} }
func (s *Store) Subjects() *Subjects { return &Subjects{s: s} }
func (s *Store) Marks() *Marks       { return &Marks{s: s} }

// tally accumulates marks so averages compare exactly as fractions.
type tally struct {
	sum   int64
	count int64
}

func (t *tally) add(v int) {
	t.sum += int64(v)
	t.count++
}

// avgCmp compares the average of t with num/den and returns -1, 0 or 1.
// den must be positive and t non-empty.
func (t tally) avgCmp(num, den int64) int {
	l, r := t.sum*den, num*t.count
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

// tallyBy groups marks matching keep by key. Caller holds mu.
func (s *Store) tallyBy(key func(model.Mark) int64, keep func(model.Mark) bool) map[int64]*tally {
	out := make(map[int64]*tally)
	for _, m := range s.marks {
		if keep != nil && !keep(m) {
			continue
		}
		t, ok := out[key(m)]
		if !ok {
			t = &tally{}
			out[key(m)] = t
		}
		t.add(m.Value)
	}
	return out
}

func byStudent(m model.Mark) int64 { return m.StudentID }
func bySubject(m model.Mark) int64 { return m.SubjectID }

// subjectIDsNamed returns the ids of subjects called name. Caller holds mu.
func (s *Store) subjectIDsNamed(name string) map[int64]bool {
	ids := make(map[int64]bool)
	for id, sb := range s.subjects {
		if sb.SubjectName == name {
			ids[id] = true
		}
	}
	return ids
}

func sortStudents(students []model.Student) []model.Student {
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}

func sortSubjects(subjects []model.Subject) []model.Subject {
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects
}

func uniqueViolation(table string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + table + "_pkey\"",
		TableName:      table,
		ConstraintName: table + "_pkey",
	}
}

func foreignKeyViolation(column string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        "insert or update on table \"marks\" violates foreign key constraint \"marks_" + column + "_fkey\"",
		TableName:      "marks",
		ConstraintName: "marks_" + column + "_fkey",
	}
}

func checkViolation() error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23514",
		Message:        "new row for relation \"marks\" violates check constraint \"marks_mark_range\"",
		TableName:      "marks",
		ConstraintName: "marks_mark_range",
	}
}
