package memstore

import (
	"context"

	"github.com/deppfellow/college-records/internal/model"
	"github.com/deppfellow/college-records/internal/repository"
)

type Subjects struct {
	s *Store
}

var _ repository.SubjectStore = (*Subjects)(nil)

func (r *Subjects) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.subjects[id]
	return ok, nil
}

func (r *Subjects) Create(_ context.Context, subject model.Subject) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.subjects[subject.ID]; ok {
		return uniqueViolation("subjects")
	}
	r.s.subjects[subject.ID] = subject
	return nil
}

func (r *Subjects) GreatestAvgMark(_ context.Context) (*model.Subject, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var (
		bestID int64
		best   *tally
	)
	for id, t := range r.s.tallyBy(bySubject, nil) {
		if best == nil {
			bestID, best = id, t
			continue
		}
		c := t.avgCmp(best.sum, best.count)
		if c > 0 || (c == 0 && id < bestID) {
			bestID, best = id, t
		}
	}

	if best == nil {
		return nil, nil
	}
	subject := r.s.subjects[bestID]
	return &subject, nil
}

func (r *Subjects) AvgMarkGreater(_ context.Context, threshold int) ([]model.Subject, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []model.Subject{}
	for id, t := range r.s.tallyBy(bySubject, nil) {
		if t.avgCmp(int64(threshold), 1) > 0 {
			out = append(out, r.s.subjects[id])
		}
	}
	return sortSubjects(out), nil
}

func (r *Subjects) AvgMarkLess(_ context.Context, threshold int) ([]model.Subject, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tallies := r.s.tallyBy(bySubject, nil)
	out := []model.Subject{}
	for id, subject := range r.s.subjects {
		t, ok := tallies[id]
		if !ok || t.avgCmp(int64(threshold), 1) < 0 {
			out = append(out, subject)
		}
	}
	return sortSubjects(out), nil
}
