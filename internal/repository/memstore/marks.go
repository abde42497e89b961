package memstore

import (
	"context"

	"github.com/deppfellow/college-records/internal/model"
	"github.com/deppfellow/college-records/internal/repository"
)

type Marks struct {
	s *Store
}

var _ repository.MarkStore = (*Marks)(nil)

func (r *Marks) Create(_ context.Context, mark model.Mark) (*model.Mark, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !model.ValidValue(mark.Value) {
		return nil, checkViolation()
	}
	if _, ok := r.s.students[mark.StudentID]; !ok {
		return nil, foreignKeyViolation("student_id")
	}
	if _, ok := r.s.subjects[mark.SubjectID]; !ok {
		return nil, foreignKeyViolation("subject_id")
	}

	mark.ID = r.s.nextMarkID
	r.s.nextMarkID++
	r.s.marks = append(r.s.marks, mark)
	return &mark, nil
}

func (r *Marks) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.marks)), nil
}

func (r *Marks) ValuesFor(_ context.Context, studentName, subjectName string) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	subjectIDs := r.s.subjectIDsNamed(subjectName)
	out := []int{}
	for _, m := range r.s.marks {
		if subjectIDs[m.SubjectID] && r.s.students[m.StudentID].Name == studentName {
			out = append(out, m.Value)
		}
	}
	return out, nil
}
