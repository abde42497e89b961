package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/college-records/internal/database"
	"github.com/deppfellow/college-records/internal/model"
	"github.com/jackc/pgx/v5"
)

type StudentRepository struct {
	db *database.Database
}

func NewStudentRepository(db *database.Database) *StudentRepository {
	return &StudentRepository{db: db}
}

var _ StudentStore = (*StudentRepository)(nil)

func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check student %d: %w", id, err)
	}
	return exists, nil
}

func (r *StudentRepository) Create(ctx context.Context, student model.Student) error {
	stmt := `
		INSERT INTO
			students (id, name)
		VALUES
			(@id, @name)
	`

	_, err := r.db.Querier(ctx).Exec(ctx, stmt, pgx.NamedArgs{
		"id":   student.ID,
		"name": student.Name,
	})
	if err != nil {
		return fmt.Errorf("failed to insert student %d: %w", student.ID, err)
	}
	return nil
}

func (r *StudentRepository) Good(ctx context.Context) ([]model.Student, error) {
	stmt := `
		SELECT
			s.id,
			s.name
		FROM
			students s
			JOIN marks m ON m.student_id = s.id
		GROUP BY
			s.id,
			s.name
		HAVING
			AVG(m.mark) >= (
				SELECT
					AVG(mark)
				FROM
					marks
			)
		ORDER BY
			s.id
	`

	return r.collect(ctx, "good students", stmt)
}

func (r *StudentRepository) Best(ctx context.Context, n int) ([]model.Student, error) {
	if n <= 0 {
		return []model.Student{}, nil
	}

	stmt := `
		SELECT
			s.id,
			s.name
		FROM
			students s
			JOIN marks m ON m.student_id = s.id
		GROUP BY
			s.id,
			s.name
		ORDER BY
			AVG(m.mark) DESC,
			s.id
		LIMIT
			@limit
	`

	return r.collect(ctx, "best students", stmt, pgx.NamedArgs{"limit": n})
}

func (r *StudentRepository) BestBySubject(ctx context.Context, n int, subjectName string) ([]model.Student, error) {
	if n <= 0 {
		return []model.Student{}, nil
	}

	stmt := `
		SELECT
			s.id,
			s.name
		FROM
			students s
			JOIN marks m ON m.student_id = s.id
			JOIN subjects sb ON sb.id = m.subject_id
		WHERE
			sb.subject_name = @subject_name
		GROUP BY
			s.id,
			s.name
		ORDER BY
			AVG(m.mark) DESC,
			s.id
		LIMIT
			@limit
	`

	return r.collect(ctx, "best students by subject", stmt, pgx.NamedArgs{
		"subject_name": subjectName,
		"limit":        n,
	})
}

func (r *StudentRepository) NamesWithMarkAtLeast(ctx context.Context, subjectName string, mark int) ([]string, error) {
	stmt := `
		SELECT DISTINCT
			s.name
		FROM
			students s
			JOIN marks m ON m.student_id = s.id
			JOIN subjects sb ON sb.id = m.subject_id
		WHERE
			sb.subject_name = @subject_name
			AND m.mark >= @mark
		ORDER BY
			s.name
	`

	rows, err := r.db.Querier(ctx).Query(ctx, stmt, pgx.NamedArgs{
		"subject_name": subjectName,
		"mark":         mark,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query student names: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect student names: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (r *StudentRepository) AllMarksAtLeast(ctx context.Context, subjectName string, mark int) ([]model.Student, error) {
	stmt := `
		SELECT
			s.id,
			s.name
		FROM
			students s
			JOIN marks m ON m.student_id = s.id
			JOIN subjects sb ON sb.id = m.subject_id
		WHERE
			sb.subject_name = @subject_name
		GROUP BY
			s.id,
			s.name
		HAVING
			MIN(m.mark) >= @mark
		ORDER BY
			s.id
	`

	return r.collect(ctx, "students with all marks at least", stmt, pgx.NamedArgs{
		"subject_name": subjectName,
		"mark":         mark,
	})
}

func (r *StudentRepository) MaxMarksCount(ctx context.Context) ([]model.Student, error) {
	stmt := `
		SELECT
			s.id,
			s.name
		FROM
			students s
			JOIN marks m ON m.student_id = s.id
		GROUP BY
			s.id,
			s.name
		HAVING
			COUNT(m.id) = (
				SELECT
					MAX(c.marks_count)
				FROM
					(
						SELECT
							COUNT(*) AS marks_count
						FROM
							marks
						GROUP BY
							student_id
					) c
			)
		ORDER BY
			s.id
	`

	return r.collect(ctx, "students with max marks count", stmt)
}

func (r *StudentRepository) DeleteAvgMarkLess(ctx context.Context, threshold int) ([]model.Student, error) {
	stmt := `
		WITH
			deleted AS (
				DELETE FROM students
				WHERE
					id NOT IN (
						SELECT
							student_id
						FROM
							marks
						GROUP BY
							student_id
						HAVING
							AVG(mark) >= @threshold
					)
				RETURNING
					id,
					name
			)
		SELECT
			id,
			name
		FROM
			deleted
		ORDER BY
			id
	`

	return r.collect(ctx, "delete students by average", stmt, pgx.NamedArgs{"threshold": threshold})
}

func (r *StudentRepository) DeleteMarksCountLess(ctx context.Context, count int) ([]model.Student, error) {
	stmt := `
		WITH
			deleted AS (
				DELETE FROM students
				WHERE
					id IN (
						SELECT
							s.id
						FROM
							students s
							LEFT JOIN marks m ON m.student_id = s.id
						GROUP BY
							s.id
						HAVING
							COUNT(m.id) < @count
					)
				RETURNING
					id,
					name
			)
		SELECT
			id,
			name
		FROM
			deleted
		ORDER BY
			id
	`

	return r.collect(ctx, "delete students by marks count", stmt, pgx.NamedArgs{"count": count})
}

// collect runs a query projecting (id, name) and scans it into students.
func (r *StudentRepository) collect(ctx context.Context, what, stmt string, args ...any) ([]model.Student, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s query: %w", what, err)
	}

	students, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Student])
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s rows: %w", what, err)
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}
