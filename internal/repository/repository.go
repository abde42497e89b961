// Package repository handles all interactions with the database.
//
// It contains the raw SQL for the college records and abstracts it away
// from the service layer behind the store interfaces below. Every
// aggregate is computed by PostgreSQL; nothing is re-derived in Go.
package repository

import (
	"context"

	"github.com/deppfellow/college-records/internal/model"
)

// Transactor runs fn in a transaction carried by the context fn receives.
// Stores called with that context take part in the transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// StudentStore reads and removes students. List results are ordered by
// student id unless stated otherwise, and are never nil.
type StudentStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, student model.Student) error

	// Good lists students whose average mark is at least the average over
	// all marks. Students without marks are excluded.
	Good(ctx context.Context) ([]model.Student, error)
	// Best lists the n students with the highest average mark, ties by id.
	Best(ctx context.Context, n int) ([]model.Student, error)
	// BestBySubject is Best over the marks of one subject.
	BestBySubject(ctx context.Context, n int, subjectName string) ([]model.Student, error)
	// NamesWithMarkAtLeast lists the distinct names, ordered by name, of
	// students with at least one mark >= mark on the subject.
	NamesWithMarkAtLeast(ctx context.Context, subjectName string, mark int) ([]string, error)
	// AllMarksAtLeast lists students with at least one mark on the subject
	// and none below mark.
	AllMarksAtLeast(ctx context.Context, subjectName string, mark int) ([]model.Student, error)
	// MaxMarksCount lists every student tied at the largest mark count.
	MaxMarksCount(ctx context.Context) ([]model.Student, error)

	// DeleteAvgMarkLess removes students whose average is below threshold
	// or who have no marks, returning them.
	DeleteAvgMarkLess(ctx context.Context, threshold int) ([]model.Student, error)
	// DeleteMarksCountLess removes students with fewer than count marks,
	// returning them.
	DeleteMarksCountLess(ctx context.Context, count int) ([]model.Student, error)
}

// SubjectStore reads subjects. Lists are ordered by subject id.
type SubjectStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, subject model.Subject) error

	// GreatestAvgMark returns nil when there are no marks.
	GreatestAvgMark(ctx context.Context) (*model.Subject, error)
	AvgMarkGreater(ctx context.Context, threshold int) ([]model.Subject, error)
	// AvgMarkLess includes subjects without marks.
	AvgMarkLess(ctx context.Context, threshold int) ([]model.Subject, error)
}

// MarkStore records marks.
type MarkStore interface {
	// Create inserts mark and returns it with the assigned id.
	Create(ctx context.Context, mark model.Mark) (*model.Mark, error)
	Count(ctx context.Context) (int64, error)
	// ValuesFor returns mark values of every student named studentName on
	// every subject named subjectName, in insertion order.
	ValuesFor(ctx context.Context, studentName, subjectName string) ([]int, error)
}
