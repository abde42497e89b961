// Package repotest holds the behavior every repository implementation must
// share. Run it from a _test.go file with a factory returning empty stores.
package repotest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/college-records/internal/errs"
	"github.com/deppfellow/college-records/internal/model"
	"github.com/deppfellow/college-records/internal/repository"
	"github.com/deppfellow/college-records/internal/sqlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stores is one set of empty stores sharing a backing database.
type Stores struct {
	Tx       repository.Transactor
	Students repository.StudentStore
	Subjects repository.SubjectStore
	Marks    repository.MarkStore
}

// Factory returns fresh, empty stores for each subtest.
type Factory func(t *testing.T) Stores

// Run executes the shared suite.
func Run(t *testing.T, newStores Factory) {
	t.Run("CreateAndExists", func(t *testing.T) { testCreateAndExists(t, newStores(t)) })
	t.Run("DuplicateIDs", func(t *testing.T) { testDuplicateIDs(t, newStores(t)) })
	t.Run("MarkReferences", func(t *testing.T) { testMarkReferences(t, newStores(t)) })
	t.Run("ValuesFor", func(t *testing.T) { testValuesFor(t, newStores(t)) })
	t.Run("Good", func(t *testing.T) { testGood(t, newStores(t)) })
	t.Run("Best", func(t *testing.T) { testBest(t, newStores(t)) })
	t.Run("BestBySubject", func(t *testing.T) { testBestBySubject(t, newStores(t)) })
	t.Run("SubjectAverages", func(t *testing.T) { testSubjectAverages(t, newStores(t)) })
	t.Run("NamesWithMarkAtLeast", func(t *testing.T) { testNamesWithMarkAtLeast(t, newStores(t)) })
	t.Run("AllMarksAtLeast", func(t *testing.T) { testAllMarksAtLeast(t, newStores(t)) })
	t.Run("MaxMarksCount", func(t *testing.T) { testMaxMarksCount(t, newStores(t)) })
	t.Run("DeleteAvgMarkLess", func(t *testing.T) { testDeleteAvgMarkLess(t, newStores(t)) })
	t.Run("DeleteMarksCountLess", func(t *testing.T) { testDeleteMarksCountLess(t, newStores(t)) })
	t.Run("EmptyStore", func(t *testing.T) { testEmptyStore(t, newStores(t)) })
	t.Run("TxRollback", func(t *testing.T) { testTxRollback(t, newStores(t)) })
}

type markRow struct {
	student int64
	subject int64
	value   int
}

// seed inserts students, subjects and marks, failing the test on error.
func seed(t *testing.T, s Stores, students []model.Student, subjects []model.Subject, marks []markRow) {
	t.Helper()
	ctx := context.Background()

	for _, st := range students {
		require.NoError(t, s.Students.Create(ctx, st))
	}
	for _, sb := range subjects {
		require.NoError(t, s.Subjects.Create(ctx, sb))
	}
	for _, m := range marks {
		_, err := s.Marks.Create(ctx, model.Mark{StudentID: m.student, SubjectID: m.subject, Value: m.value})
		require.NoError(t, err)
	}
}

func ann() model.Student  { return model.Student{ID: 1, Name: "Ann"} }
func bob() model.Student  { return model.Student{ID: 2, Name: "Bob"} }
func cara() model.Student { return model.Student{ID: 3, Name: "Cara"} }
func math() model.Subject { return model.Subject{ID: 10, SubjectName: "Math"} }
func art() model.Subject  { return model.Subject{ID: 20, SubjectName: "Art"} }

func testCreateAndExists(t *testing.T, s Stores) {
	ctx := context.Background()

	ok, err := s.Students.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	seed(t, s, []model.Student{ann()}, []model.Subject{math()}, nil)

	ok, err = s.Students.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Subjects.Exists(ctx, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	mark, err := s.Marks.Create(ctx, model.Mark{StudentID: 1, SubjectID: 10, Value: 80})
	require.NoError(t, err)
	assert.Positive(t, mark.ID)
	assert.Equal(t, 80, mark.Value)

	count, err := s.Marks.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func testDuplicateIDs(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s, []model.Student{ann()}, []model.Subject{math()}, nil)

	err := s.Students.Create(ctx, model.Student{ID: 1, Name: "Other"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, errs.StatusOf(sqlerr.HandleError(err)))
	assert.Equal(t, "STUDENT_ALREADY_EXISTS", errs.CodeOf(sqlerr.HandleError(err)))

	err = s.Subjects.Create(ctx, model.Subject{ID: 10, SubjectName: "Other"})
	require.Error(t, err)
	assert.Equal(t, "SUBJECT_ALREADY_EXISTS", errs.CodeOf(sqlerr.HandleError(err)))
}

func testMarkReferences(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s, []model.Student{ann()}, []model.Subject{math()}, nil)

	_, err := s.Marks.Create(ctx, model.Mark{StudentID: 99, SubjectID: 10, Value: 50})
	require.Error(t, err)
	mapped := sqlerr.HandleError(err)
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(mapped))
	assert.Equal(t, "STUDENT_NOT_FOUND", errs.CodeOf(mapped))

	_, err = s.Marks.Create(ctx, model.Mark{StudentID: 1, SubjectID: 99, Value: 50})
	require.Error(t, err)
	assert.Equal(t, "SUBJECT_NOT_FOUND", errs.CodeOf(sqlerr.HandleError(err)))

	_, err = s.Marks.Create(ctx, model.Mark{StudentID: 1, SubjectID: 10, Value: model.MaxMark + 1})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errs.StatusOf(sqlerr.HandleError(err)))

	count, err := s.Marks.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func testValuesFor(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s,
		[]model.Student{ann(), bob(), {ID: 4, Name: "Ann"}},
		[]model.Subject{math(), art()},
		[]markRow{{1, 10, 70}, {2, 10, 60}, {1, 20, 50}, {4, 10, 95}, {1, 10, 85}},
	)

	values, err := s.Marks.ValuesFor(ctx, "Ann", "Math")
	require.NoError(t, err)
	assert.Equal(t, []int{70, 95, 85}, values)

	values, err = s.Marks.ValuesFor(ctx, "Nobody", "Math")
	require.NoError(t, err)
	assert.NotNil(t, values)
	assert.Empty(t, values)
}

func testGood(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s,
		[]model.Student{ann(), bob(), cara()},
		[]model.Subject{math()},
		[]markRow{{1, 10, 90}, {2, 10, 60}},
	)

	good, err := s.Students.Good(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Student{ann()}, good)
}

func testBest(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s,
		[]model.Student{ann(), bob(), cara()},
		[]model.Subject{math()},
		[]markRow{{1, 10, 80}, {2, 10, 90}, {3, 10, 70}, {3, 10, 90}},
	)

	best, err := s.Students.Best(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []model.Student{bob(), ann()}, best)

	// Ann and Cara tie at 80.
	best, err = s.Students.Best(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []model.Student{bob(), ann(), cara()}, best)

	best, err = s.Students.Best(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, best)
	assert.Empty(t, best)
}

func testBestBySubject(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s,
		[]model.Student{ann(), bob()},
		[]model.Subject{math(), art()},
		[]markRow{{1, 10, 60}, {1, 20, 100}, {2, 10, 90}, {2, 20, 40}},
	)

	best, err := s.Students.BestBySubject(ctx, 1, "Art")
	require.NoError(t, err)
	assert.Equal(t, []model.Student{ann()}, best)

	best, err = s.Students.BestBySubject(ctx, 5, "Math")
	require.NoError(t, err)
	assert.Equal(t, []model.Student{bob(), ann()}, best)

	best, err = s.Students.BestBySubject(ctx, 5, "History")
	require.NoError(t, err)
	assert.Empty(t, best)
}

func testSubjectAverages(t *testing.T, s Stores) {
	ctx := context.Background()
	history := model.Subject{ID: 30, SubjectName: "History"}
	seed(t, s,
		[]model.Student{ann(), bob()},
		[]model.Subject{math(), art(), history},
		[]markRow{{1, 10, 90}, {2, 10, 60}, {1, 20, 75}, {2, 20, 75}},
	)

	// Math and Art tie at 75; the lower id wins.
	greatest, err := s.Subjects.GreatestAvgMark(ctx)
	require.NoError(t, err)
	require.NotNil(t, greatest)
	assert.Equal(t, math(), *greatest)

	greater, err := s.Subjects.AvgMarkGreater(ctx, 70)
	require.NoError(t, err)
	assert.Equal(t, []model.Subject{math(), art()}, greater)

	greater, err = s.Subjects.AvgMarkGreater(ctx, 75)
	require.NoError(t, err)
	assert.Empty(t, greater)

	less, err := s.Subjects.AvgMarkLess(ctx, 80)
	require.NoError(t, err)
	assert.Equal(t, []model.Subject{math(), art(), history}, less)

	less, err = s.Subjects.AvgMarkLess(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []model.Subject{history}, less)
}

func testNamesWithMarkAtLeast(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s,
		[]model.Student{bob(), ann(), cara(), {ID: 4, Name: "Ann"}},
		[]model.Subject{math(), art()},
		[]markRow{{1, 10, 90}, {4, 10, 95}, {2, 10, 85}, {3, 10, 40}, {3, 20, 100}},
	)

	names, err := s.Students.NamesWithMarkAtLeast(ctx, "Math", 80)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob"}, names)

	names, err = s.Students.NamesWithMarkAtLeast(ctx, "Math", 100)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func testAllMarksAtLeast(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s,
		[]model.Student{ann(), bob(), cara()},
		[]model.Subject{math(), art()},
		[]markRow{{1, 10, 80}, {1, 10, 90}, {2, 10, 80}, {2, 10, 50}, {3, 20, 100}},
	)

	students, err := s.Students.AllMarksAtLeast(ctx, "Math", 80)
	require.NoError(t, err)
	// Cara has no Math marks and is excluded.
	assert.Equal(t, []model.Student{ann()}, students)

	students, err = s.Students.AllMarksAtLeast(ctx, "Math", 0)
	require.NoError(t, err)
	assert.Equal(t, []model.Student{ann(), bob()}, students)
}

func testMaxMarksCount(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s,
		[]model.Student{ann(), bob(), cara()},
		[]model.Subject{math()},
		[]markRow{{1, 10, 80}, {1, 10, 90}, {2, 10, 80}, {3, 10, 50}, {3, 10, 55}},
	)

	students, err := s.Students.MaxMarksCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Student{ann(), cara()}, students)
}

func testDeleteAvgMarkLess(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s,
		[]model.Student{ann(), bob(), cara()},
		[]model.Subject{math()},
		[]markRow{{1, 10, 90}, {2, 10, 60}},
	)

	removed, err := s.Students.DeleteAvgMarkLess(ctx, 70)
	require.NoError(t, err)
	assert.Equal(t, []model.Student{bob(), cara()}, removed)

	for _, id := range []int64{2, 3} {
		ok, err := s.Students.Exists(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// Bob's mark went with him.
	count, err := s.Marks.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	ok, err := s.Subjects.Exists(ctx, 10)
	require.NoError(t, err)
	assert.True(t, ok)
}

func testDeleteMarksCountLess(t *testing.T, s Stores) {
	ctx := context.Background()
	seed(t, s,
		[]model.Student{ann(), bob(), cara()},
		[]model.Subject{math()},
		[]markRow{{1, 10, 90}, {1, 10, 80}, {2, 10, 60}},
	)

	removed, err := s.Students.DeleteMarksCountLess(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []model.Student{bob(), cara()}, removed)

	removed, err = s.Students.DeleteMarksCountLess(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, removed)
	assert.Empty(t, removed)

	ok, err := s.Students.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func testEmptyStore(t *testing.T, s Stores) {
	ctx := context.Background()

	greatest, err := s.Subjects.GreatestAvgMark(ctx)
	require.NoError(t, err)
	assert.Nil(t, greatest)

	students, err := s.Students.MaxMarksCount(ctx)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)

	students, err = s.Students.Good(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func testTxRollback(t *testing.T, s Stores) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Tx.WithTx(ctx, func(ctx context.Context) error {
		require.NoError(t, s.Students.Create(ctx, ann()))
		return boom
	})
	require.ErrorIs(t, err, boom)

	ok, err := s.Students.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	err = s.Tx.WithTx(ctx, func(ctx context.Context) error {
		return s.Students.Create(ctx, ann())
	})
	require.NoError(t, err)

	ok, err = s.Students.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
