package memstore

import (
	"context"
	"sort"

	"github.com/deppfellow/college-records/internal/model"
	"github.com/deppfellow/college-records/internal/repository"
)

type Students struct {
	s *Store
}

var _ repository.StudentStore = (*Students)(nil)

func (r *Students) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.students[id]
	return ok, nil
}

func (r *Students) Create(_ context.Context, student model.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.students[student.ID]; ok {
		return uniqueViolation("students")
	}
	r.s.students[student.ID] = student
	return nil
}

func (r *Students) Good(_ context.Context) ([]model.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var all tally
	for _, m := range r.s.marks {
		all.add(m.Value)
	}

	out := []model.Student{}
	for id, t := range r.s.tallyBy(byStudent, nil) {
		if t.avgCmp(all.sum, all.count) >= 0 {
			out = append(out, r.s.students[id])
		}
	}
	return sortStudents(out), nil
}

func (r *Students) Best(_ context.Context, n int) ([]model.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.best(n, r.s.tallyBy(byStudent, nil)), nil
}

func (r *Students) BestBySubject(_ context.Context, n int, subjectName string) ([]model.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.subjectIDsNamed(subjectName)
	return r.best(n, r.s.tallyBy(byStudent, func(m model.Mark) bool { return ids[m.SubjectID] })), nil
}

// best ranks tallies by average desc, id asc. Caller holds mu.
func (r *Students) best(n int, tallies map[int64]*tally) []model.Student {
	if n <= 0 {
		return []model.Student{}
	}

	ids := make([]int64, 0, len(tallies))
	for id := range tallies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := tallies[ids[i]], tallies[ids[j]]
		if c := a.avgCmp(b.sum, b.count); c != 0 {
			return c > 0
		}
		return ids[i] < ids[j]
	})

	if len(ids) > n {
		ids = ids[:n]
	}
	out := make([]model.Student, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.students[id])
	}
	return out
}

func (r *Students) NamesWithMarkAtLeast(_ context.Context, subjectName string, mark int) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.subjectIDsNamed(subjectName)
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range r.s.marks {
		if !ids[m.SubjectID] || m.Value < mark {
			continue
		}
		name := r.s.students[m.StudentID].Name
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *Students) AllMarksAtLeast(_ context.Context, subjectName string, mark int) ([]model.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.subjectIDsNamed(subjectName)
	lowest := make(map[int64]int)
	for _, m := range r.s.marks {
		if !ids[m.SubjectID] {
			continue
		}
		if cur, ok := lowest[m.StudentID]; !ok || m.Value < cur {
			lowest[m.StudentID] = m.Value
		}
	}

	out := []model.Student{}
	for id, low := range lowest {
		if low >= mark {
			out = append(out, r.s.students[id])
		}
	}
	return sortStudents(out), nil
}

func (r *Students) MaxMarksCount(_ context.Context) ([]model.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tallies := r.s.tallyBy(byStudent, nil)
	var most int64
	for _, t := range tallies {
		most = max(most, t.count)
	}

	out := []model.Student{}
	for id, t := range tallies {
		if t.count == most {
			out = append(out, r.s.students[id])
		}
	}
	return sortStudents(out), nil
}

func (r *Students) DeleteAvgMarkLess(_ context.Context, threshold int) ([]model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tallies := r.s.tallyBy(byStudent, nil)
	return r.deleteWhere(func(id int64) bool {
		t, ok := tallies[id]
		return !ok || t.avgCmp(int64(threshold), 1) < 0
	}), nil
}

func (r *Students) DeleteMarksCountLess(_ context.Context, count int) ([]model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tallies := r.s.tallyBy(byStudent, nil)
	return r.deleteWhere(func(id int64) bool {
		var n int64
		if t, ok := tallies[id]; ok {
			n = t.count
		}
		return n < int64(count)
	}), nil
}

// deleteWhere removes matching students and their marks. Caller holds mu.
func (r *Students) deleteWhere(match func(id int64) bool) []model.Student {
	removed := []model.Student{}
	for id, st := range r.s.students {
		if match(id) {
			removed = append(removed, st)
			delete(r.s.students, id)
		}
	}

	kept := r.s.marks[:0]
	for _, m := range r.s.marks {
		if _, ok := r.s.students[m.StudentID]; ok {
			kept = append(kept, m)
		}
	}
	r.s.marks = kept

	return sortStudents(removed)
}
