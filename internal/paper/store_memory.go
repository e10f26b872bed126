package paper

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	papers map[string]QuestionPaper
}

// NewInMemoryStore backs the paper store with a map, for tests and
// single-process offline use.
func NewInMemoryStore() Store {
	return &memoryStore{papers: map[string]QuestionPaper{}}
}

func (m *memoryStore) PutPaper(_ context.Context, p QuestionPaper) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.papers[p.ID] = p
	return nil
}

func (m *memoryStore) GetPaper(_ context.Context, id string) (QuestionPaper, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.papers[id]
	if !ok {
		return QuestionPaper{}, ErrNotFound
	}
	p.Questions = append([]Question(nil), p.Questions...)
	return p, nil
}

func (m *memoryStore) ListPapers(_ context.Context, opts ListOpts) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Summary
	for _, p := range m.papers {
		if opts.Status != "" && p.Status != opts.Status {
			continue
		}
		if opts.CourseID != "" && p.CourseID != opts.CourseID {
			continue
		}
		if opts.AuthorID != "" && p.AuthorID != opts.AuthorID {
			continue
		}
		out = append(out, Summary{
			ID: p.ID, CourseID: p.CourseID, ExamName: p.ExamName,
			AuthorID: p.AuthorID, TotalMarks: p.TotalMarks,
			Status: p.Status, CreatedAt: p.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryStore) SetStatus(_ context.Context, id string, from, to Status, reviewerID string, reviewedAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.papers[id]
	if !ok {
		return ErrNotFound
	}
	if p.Status != from {
		return ErrAlreadyReviewed
	}
	p.Status = to
	p.ReviewedBy = reviewerID
	p.ReviewedAt = reviewedAt
	m.papers[id] = p
	return nil
}
