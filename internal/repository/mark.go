package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/college-records/internal/database"
	"github.com/deppfellow/college-records/internal/model"
	"github.com/jackc/pgx/v5"
)

type MarkRepository struct {
	db *database.Database
}

func NewMarkRepository(db *database.Database) *MarkRepository {
	return &MarkRepository{db: db}
}

var _ MarkStore = (*MarkRepository)(nil)

func (r *MarkRepository) Create(ctx context.Context, mark model.Mark) (*model.Mark, error) {
	stmt := `
		INSERT INTO
			marks (mark, student_id, subject_id)
		VALUES
			(@mark, @student_id, @subject_id)
		RETURNING
			id
	`

	err := r.db.Querier(ctx).QueryRow(ctx, stmt, pgx.NamedArgs{
		"mark":       mark.Value,
		"student_id": mark.StudentID,
		"subject_id": mark.SubjectID,
	}).Scan(&mark.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert mark for student %d: %w", mark.StudentID, err)
	}
	return &mark, nil
}

func (r *MarkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Querier(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM marks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count marks: %w", err)
	}
	return count, nil
}

func (r *MarkRepository) ValuesFor(ctx context.Context, studentName, subjectName string) ([]int, error) {
	stmt := `
		SELECT
			m.mark
		FROM
			marks m
			JOIN students s ON s.id = m.student_id
			JOIN subjects sb ON sb.id = m.subject_id
		WHERE
			s.name = @student_name
			AND sb.subject_name = @subject_name
		ORDER BY
			m.id
	`

	rows, err := r.db.Querier(ctx).Query(ctx, stmt, pgx.NamedArgs{
		"student_name": studentName,
		"subject_name": subjectName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query marks: %w", err)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("failed to collect marks: %w", err)
	}
	if values == nil {
		values = []int{}
	}
	return values, nil
}
