package exam

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu    sync.RWMutex
	exams map[string]Exam
	order []string
}

// NewInMemoryStore returns a Store backed by a process-local map. Used by
// tests and as a stand-in when no database is reachable.
func NewInMemoryStore() Store {
	return &memoryStore{exams: map[string]Exam{}}
}

func (m *memoryStore) ListExams(ctx context.Context) ([]Exam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Exam, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, copyExam(m.exams[id]))
	}
	return out, nil
}

func (m *memoryStore) GetExam(ctx context.Context, id string) (Exam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.exams[id]
	if !ok {
		return Exam{}, ErrNotFound
	}
	return copyExam(e), nil
}

func (m *memoryStore) CreateExam(ctx context.Context, e Exam) (Exam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := Filter{Division: e.Division, Level: e.Level, Term: e.Term, Subject: e.Subject, Year: e.Year}
	if id := m.findByFilter(f); id != "" {
		return Exam{}, invalidf("exam already exists for this division/level/term/subject/year")
	}
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().Unix()
	m.exams[e.ID] = e
	m.order = append(m.order, e.ID)
	return e, nil
}

func (m *memoryStore) ReplaceExam(ctx context.Context, id string, e Exam) (Exam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.exams[id]
	if !ok {
		return Exam{}, ErrNotFound
	}
	e.ID = id
	e.CreatedAt = old.CreatedAt
	m.exams[id] = e
	return e, nil
}

func (m *memoryStore) DeleteExam(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exams[id]; !ok {
		return ErrNotFound
	}
	delete(m.exams, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryStore) AppendQuestion(ctx context.Context, f Filter, q Question) (Exam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.findByFilter(f)
	if id == "" {
		return Exam{}, ErrNotFound
	}
	e := m.exams[id]
	e.Questions = append(append([]Question{}, e.Questions...), q)
	m.exams[id] = e
	return copyExam(e), nil
}

func (m *memoryStore) RemoveQuestion(ctx context.Context, f Filter, index int) (Exam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.findByFilter(f)
	if id == "" {
		return Exam{}, ErrNotFound
	}
	e := m.exams[id]
	qs, err := removeQuestionAt(e.Questions, index)
	if err != nil {
		return Exam{}, err
	}
	e.Questions = qs
	m.exams[id] = e
	return copyExam(e), nil
}

func (m *memoryStore) Close(ctx context.Context) error { return nil }

// caller holds the lock
func (m *memoryStore) findByFilter(f Filter) string {
	for _, id := range m.order {
		e := m.exams[id]
		if e.Division == f.Division && e.Level == f.Level && e.Term == f.Term &&
			e.Subject == f.Subject && e.Year == f.Year {
			return id
		}
	}
	return ""
}

// copyExam detaches the questions slice so callers cannot mutate stored
// documents through a returned exam.
func copyExam(e Exam) Exam {
	e.Questions = append([]Question{}, e.Questions...)
	return e
}

// removeQuestionAt splices index i out of qs without mutating the input.
func removeQuestionAt(qs []Question, i int) ([]Question, error) {
	if i < 0 || i >= len(qs) {
		return nil, invalidf("Invalid question index")
	}
	out := make([]Question, 0, len(qs)-1)
	out = append(out, qs[:i]...)
	out = append(out, qs[i+1:]...)
	return out, nil
}
