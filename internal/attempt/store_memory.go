package attempt

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	attempts map[string]Attempt
}

// NewInMemoryStore is the map-backed store used in tests and offline
// single-process runs. The conditional-transition semantics match the
// SQL store: the check and the write happen under one lock.
func NewInMemoryStore() Store {
	return &memoryStore{attempts: map[string]Attempt{}}
}

func (m *memoryStore) Get(_ context.Context, studentID, paperID string) (Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attempts[Key(studentID, paperID)]
	if !ok {
		return Attempt{}, ErrNotFound
	}
	return copyAttempt(a), nil
}

func (m *memoryStore) Upsert(_ context.Context, a Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := Key(a.StudentID, a.PaperID)
	if cur, ok := m.attempts[k]; ok && cur.State != StateInProgress {
		return nil // answers frozen after submission
	}
	m.attempts[k] = copyAttempt(a)
	return nil
}

func (m *memoryStore) TransitionSubmit(_ context.Context, studentID, paperID string, answers map[int]string, submittedAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := Key(studentID, paperID)
	a, ok := m.attempts[k]
	if !ok {
		return ErrNotFound
	}
	if a.State != StateInProgress {
		return ErrDuplicateSubmission
	}
	a.State = StateSubmitted
	a.Answers = copyAnswers(answers)
	a.SubmittedAt = submittedAt
	m.attempts[k] = a
	return nil
}

func (m *memoryStore) ListByStudent(_ context.Context, studentID string) ([]Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Attempt
	for _, a := range m.attempts {
		if a.StudentID == studentID {
			out = append(out, copyAttempt(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt > out[j].StartedAt })
	return out, nil
}

func copyAttempt(a Attempt) Attempt {
	a.Answers = copyAnswers(a.Answers)
	return a
}

func copyAnswers(in map[int]string) map[int]string {
	out := make(map[int]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
