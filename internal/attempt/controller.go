package attempt

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/eventlog"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/paper"
)

// PaperCatalog is the slice of the paper store the controller reads.
type PaperCatalog interface {
	GetPaper(ctx context.Context, id string) (paper.QuestionPaper, error)
}

type EventAppender interface {
	Append(ctx context.Context, e eventlog.Event) error
}

// Controller is the per-(student, paper) state machine. All operations
// on one key run inside that key's critical section; the stores add a
// conditional write underneath so the submit transition stays
// exactly-once even if a second process shares the database.
type Controller struct {
	papers PaperCatalog
	store  Store
	events EventAppender
	keys   *keyedMutex
	log    zerolog.Logger
}

func NewController(papers PaperCatalog, store Store, events EventAppender, log zerolog.Logger) *Controller {
	return &Controller{
		papers: papers,
		store:  store,
		events: events,
		keys:   newKeyedMutex(),
		log:    log.With().Str("component", "attempt").Logger(),
	}
}

// RecordAnswer writes one answer. The first write for a pair creates
// the attempt, which requires the paper to be accepted. Overwrites are
// allowed while in_progress; anything later is rejected without
// touching stored answers.
func (c *Controller) RecordAnswer(ctx context.Context, studentID, paperID string, questionID int, text string) (Attempt, error) {
	unlock := c.keys.lock(Key(studentID, paperID))
	defer unlock()

	p, err := c.papers.GetPaper(ctx, paperID)
	if err != nil {
		if errors.Is(err, paper.ErrNotFound) {
			return Attempt{}, ErrPaperNotAvailable
		}
		return Attempt{}, err
	}
	if !questionExists(p, questionID) {
		return Attempt{}, ErrUnknownQuestion
	}

	a, err := c.store.Get(ctx, studentID, paperID)
	switch {
	case err == nil:
		if a.State != StateInProgress {
			return Attempt{}, ErrDuplicateSubmission
		}
	case errors.Is(err, ErrNotFound):
		if p.Status != paper.StatusAccepted {
			return Attempt{}, ErrPaperNotAvailable
		}
		a = Attempt{
			StudentID: studentID,
			PaperID:   paperID,
			State:     StateInProgress,
			Answers:   map[int]string{},
			StartedAt: time.Now().Unix(),
		}
	default:
		return Attempt{}, err
	}

	a.Answers[questionID] = text
	if err := c.store.Upsert(ctx, a); err != nil {
		return Attempt{}, err
	}
	return a, nil
}

// Submit verifies every question has a non-empty answer, then performs
// the atomic in_progress -> submitted transition. Exactly one of N
// racing calls wins; the rest observe ErrDuplicateSubmission.
func (c *Controller) Submit(ctx context.Context, studentID, paperID string) (Attempt, error) {
	unlock := c.keys.lock(Key(studentID, paperID))
	defer unlock()

	a, err := c.store.Get(ctx, studentID, paperID)
	if err != nil {
		return Attempt{}, err
	}
	if a.State != StateInProgress {
		return Attempt{}, ErrDuplicateSubmission
	}

	p, err := c.papers.GetPaper(ctx, paperID)
	if err != nil {
		return Attempt{}, err
	}
	for _, q := range p.Questions {
		if strings.TrimSpace(a.Answers[q.ID]) == "" {
			return Attempt{}, ErrIncompleteSubmission
		}
	}

	now := time.Now().Unix()
	if err := c.store.TransitionSubmit(ctx, studentID, paperID, a.Answers, now); err != nil {
		return Attempt{}, err
	}
	a.State = StateSubmitted
	a.SubmittedAt = now

	c.appendEvent(ctx, eventlog.TypeAttemptSubmitted, Key(studentID, paperID), map[string]any{
		"student_id": studentID, "paper_id": paperID, "submitted_at": now,
	})
	c.log.Info().Str("student_id", studentID).Str("paper_id", paperID).Msg("attempt submitted")
	return a, nil
}

// Get returns the attempt for a pair; a missing row means not started.
func (c *Controller) Get(ctx context.Context, studentID, paperID string) (Attempt, error) {
	return c.store.Get(ctx, studentID, paperID)
}

func questionExists(p paper.QuestionPaper, questionID int) bool {
	for _, q := range p.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

func (c *Controller) appendEvent(ctx context.Context, typ, key string, data map[string]any) {
	if c.events == nil {
		return
	}
	buf, _ := json.Marshal(data)
	if err := c.events.Append(ctx, eventlog.Event{Type: typ, Key: key, DataJSON: string(buf)}); err != nil {
		c.log.Warn().Err(err).Str("type", typ).Str("key", key).Msg("event append failed")
	}
}
