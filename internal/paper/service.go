package paper

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/eventlog"
)

// EventAppender is the slice of the event log the service needs.
type EventAppender interface {
	Append(ctx context.Context, e eventlog.Event) error
}

// Service owns authoring drafts and the scrutiny gate. Open drafts are
// held in memory: a draft has exactly one author and only becomes
// durable when it is finalized.
type Service struct {
	store  Store
	events EventAppender
	log    zerolog.Logger

	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewService(store Store, events EventAppender, log zerolog.Logger) *Service {
	return &Service{
		store:  store,
		events: events,
		log:    log.With().Str("component", "paper").Logger(),
		drafts: map[string]*Draft{},
	}
}

// StartDraft opens a new draft and returns its handle.
func (s *Service) StartDraft(courseID, examName, academicTerm, authorID string, totalMarks int) (string, error) {
	d, err := NewDraft("", courseID, examName, academicTerm, authorID, totalMarks)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.drafts[id] = d
	s.mu.Unlock()
	return id, nil
}

func (s *Service) draft(draftID string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

// AddQuestion appends to an open draft, enforcing the incremental
// budget check.
func (s *Service) AddQuestion(draftID, prompt, answer, hint string, marks int) (Question, error) {
	d, err := s.draft(draftID)
	if err != nil {
		return Question{}, err
	}
	return d.AddQuestion(prompt, answer, hint, marks)
}

// DraftPaper returns the draft's paper so far, with the running total.
func (s *Service) DraftPaper(draftID string) (QuestionPaper, int, error) {
	d, err := s.draft(draftID)
	if err != nil {
		return QuestionPaper{}, 0, err
	}
	return d.Paper(), d.CurrentSum(), nil
}

// FinalizeDraft validates the budget, persists the pending paper and
// drops the draft. On a budget mismatch the draft stays open so the
// author can correct it.
func (s *Service) FinalizeDraft(ctx context.Context, draftID string) (QuestionPaper, error) {
	d, err := s.draft(draftID)
	if err != nil {
		return QuestionPaper{}, err
	}
	p, err := d.Finalize()
	if err != nil {
		return QuestionPaper{}, err
	}
	if err := s.store.PutPaper(ctx, p); err != nil {
		return QuestionPaper{}, err
	}
	s.mu.Lock()
	delete(s.drafts, draftID)
	s.mu.Unlock()
	s.appendEvent(ctx, eventlog.TypePaperFinalized, p.ID, map[string]any{
		"course_id": p.CourseID, "author_id": p.AuthorID, "total_marks": p.TotalMarks,
	})
	s.log.Info().Str("paper_id", p.ID).Str("author_id", p.AuthorID).Int("total_marks", p.TotalMarks).Msg("paper finalized")
	return p, nil
}

// Review applies the scrutiny decision. Pending is the only reviewable
// state; a second decision loses the conditional update and surfaces
// ErrAlreadyReviewed.
func (s *Service) Review(ctx context.Context, paperID, reviewerID string, accept bool) (QuestionPaper, error) {
	to := StatusDeclined
	if accept {
		to = StatusAccepted
	}
	if err := s.store.SetStatus(ctx, paperID, StatusPending, to, reviewerID, time.Now().Unix()); err != nil {
		return QuestionPaper{}, err
	}
	s.appendEvent(ctx, eventlog.TypePaperReviewed, paperID, map[string]any{
		"reviewer_id": reviewerID, "status": string(to),
	})
	s.log.Info().Str("paper_id", paperID).Str("reviewer_id", reviewerID).Str("status", string(to)).Msg("paper reviewed")
	return s.store.GetPaper(ctx, paperID)
}

func (s *Service) Get(ctx context.Context, id string) (QuestionPaper, error) {
	return s.store.GetPaper(ctx, id)
}

func (s *Service) List(ctx context.Context, opts ListOpts) ([]Summary, error) {
	return s.store.ListPapers(ctx, opts)
}

// ListAssignable is the student-facing feed: accepted papers only.
func (s *Service) ListAssignable(ctx context.Context, courseID string) ([]Summary, error) {
	return s.store.ListPapers(ctx, ListOpts{Status: StatusAccepted, CourseID: courseID})
}

// ListPendingReview feeds the scrutineer queue.
func (s *Service) ListPendingReview(ctx context.Context) ([]Summary, error) {
	return s.store.ListPapers(ctx, ListOpts{Status: StatusPending})
}

func (s *Service) appendEvent(ctx context.Context, typ, key string, data map[string]any) {
	if s.events == nil {
		return
	}
	buf, _ := json.Marshal(data)
	if err := s.events.Append(ctx, eventlog.Event{Type: typ, Key: key, DataJSON: string(buf)}); err != nil {
		s.log.Warn().Err(err).Str("type", typ).Str("key", key).Msg("event append failed")
	}
}
