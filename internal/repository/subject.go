package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/college-records/internal/database"
	"github.com/deppfellow/college-records/internal/model"
	"github.com/jackc/pgx/v5"
)

type SubjectRepository struct {
	db *database.Database
}

func NewSubjectRepository(db *database.Database) *SubjectRepository {
	return &SubjectRepository{db: db}
}

var _ SubjectStore = (*SubjectRepository)(nil)

func (r *SubjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM subjects WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check subject %d: %w", id, err)
	}
	return exists, nil
}

func (r *SubjectRepository) Create(ctx context.Context, subject model.Subject) error {
	stmt := `
		INSERT INTO
			subjects (id, subject_name)
		VALUES
			(@id, @subject_name)
	`

	_, err := r.db.Querier(ctx).Exec(ctx, stmt, pgx.NamedArgs{
		"id":           subject.ID,
		"subject_name": subject.SubjectName,
	})
	if err != nil {
		return fmt.Errorf("failed to insert subject %d: %w", subject.ID, err)
	}
	return nil
}

func (r *SubjectRepository) GreatestAvgMark(ctx context.Context) (*model.Subject, error) {
	stmt := `
		SELECT
			sb.id,
			sb.subject_name
		FROM
			subjects sb
			JOIN marks m ON m.subject_id = sb.id
		GROUP BY
			sb.id,
			sb.subject_name
		ORDER BY
			AVG(m.mark) DESC,
			sb.id
		LIMIT
			1
	`

	rows, err := r.db.Querier(ctx).Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute greatest average subject query: %w", err)
	}

	subject, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Subject])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to collect greatest average subject: %w", err)
	}
	return &subject, nil
}

func (r *SubjectRepository) AvgMarkGreater(ctx context.Context, threshold int) ([]model.Subject, error) {
	stmt := `
		SELECT
			sb.id,
			sb.subject_name
		FROM
			subjects sb
			JOIN marks m ON m.subject_id = sb.id
		GROUP BY
			sb.id,
			sb.subject_name
		HAVING
			AVG(m.mark) > @threshold
		ORDER BY
			sb.id
	`

	return r.collect(ctx, "subjects with average greater", stmt, pgx.NamedArgs{"threshold": threshold})
}

func (r *SubjectRepository) AvgMarkLess(ctx context.Context, threshold int) ([]model.Subject, error) {
	stmt := `
		SELECT
			sb.id,
			sb.subject_name
		FROM
			subjects sb
			LEFT JOIN marks m ON m.subject_id = sb.id
		GROUP BY
			sb.id,
			sb.subject_name
		HAVING
			COUNT(m.id) = 0
			OR AVG(m.mark) < @threshold
		ORDER BY
			sb.id
	`

	return r.collect(ctx, "subjects with average less", stmt, pgx.NamedArgs{"threshold": threshold})
}

func (r *SubjectRepository) collect(ctx context.Context, what, stmt string, args ...any) ([]model.Subject, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s query: %w", what, err)
	}

	subjects, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Subject])
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s rows: %w", what, err)
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	return subjects, nil
}
