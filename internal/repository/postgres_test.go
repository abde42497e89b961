package repository_test

import (
	"testing"

	"github.com/deppfellow/college-records/internal/database/dbtest"
	"github.com/deppfellow/college-records/internal/repository"
	"github.com/deppfellow/college-records/internal/repository/repotest"
)

func TestContract_Postgres(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repotest.Stores {
		db := dbtest.Open(t)
		return repotest.Stores{
			Tx:       db,
			Students: repository.NewStudentRepository(db),
			Subjects: repository.NewSubjectRepository(db),
			Marks:    repository.NewMarkRepository(db),
		}
	})
}
