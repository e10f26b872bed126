package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/attempt"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/eventlog"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/paper"
)

type AttemptSource interface {
	Get(ctx context.Context, studentID, paperID string) (attempt.Attempt, error)
}

type PaperCatalog interface {
	GetPaper(ctx context.Context, id string) (paper.QuestionPaper, error)
}

type EventAppender interface {
	Append(ctx context.Context, e eventlog.Event) error
}

// Broker reconciles an external grading call into a persisted Result.
// Evaluate is retry-safe: a grader failure leaves the attempt
// submitted, and a retry after success is a no-op that returns the
// stored result. Concurrent calls for the same attempt are collapsed
// into one grader round trip.
type Broker struct {
	attempts AttemptSource
	papers   PaperCatalog
	store    Store
	grader   Grader
	events   EventAppender
	group    singleflight.Group
	timeout  time.Duration
	log      zerolog.Logger
}

func NewBroker(attempts AttemptSource, papers PaperCatalog, store Store, grader Grader, events EventAppender, timeout time.Duration, log zerolog.Logger) *Broker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Broker{
		attempts: attempts,
		papers:   papers,
		store:    store,
		grader:   grader,
		events:   events,
		timeout:  timeout,
		log:      log.With().Str("component", "grading").Logger(),
	}
}

func (b *Broker) Evaluate(ctx context.Context, studentID, paperID string) (Result, error) {
	v, err, _ := b.group.Do(attempt.Key(studentID, paperID), func() (any, error) {
		return b.evaluate(ctx, studentID, paperID)
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (b *Broker) evaluate(ctx context.Context, studentID, paperID string) (Result, error) {
	a, err := b.attempts.Get(ctx, studentID, paperID)
	if err != nil {
		return Result{}, err
	}
	switch a.State {
	case attempt.StateEvaluated:
		// Already reconciled; hand back the stored result.
		return b.store.GetResult(ctx, studentID, paperID)
	case attempt.StateSubmitted:
	default:
		return Result{}, ErrNotSubmitted
	}

	// A result row without the evaluated flag cannot exist (single
	// transaction), but a retry that lost an earlier race may still find
	// one; treat it as success rather than grading twice.
	if r, err := b.store.GetResult(ctx, studentID, paperID); err == nil {
		return r, nil
	} else if !errors.Is(err, ErrResultNotFound) {
		return Result{}, err
	}

	p, err := b.papers.GetPaper(ctx, paperID)
	if err != nil {
		return Result{}, err
	}

	gctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	resp, err := b.grader.Grade(gctx, GradeRequest{PaperID: paperID, StudentID: studentID, Answers: a.Answers})
	if err != nil {
		b.log.Warn().Err(err).Str("student_id", studentID).Str("paper_id", paperID).Msg("grader call failed")
		return Result{}, fmt.Errorf("%w: %v", ErrEvaluationUnavailable, err)
	}
	if resp.FinalScore < 0 || resp.FinalScore > float64(p.TotalMarks) {
		return Result{}, fmt.Errorf("%w: score %.2f outside [0,%d]", ErrEvaluationUnavailable, resp.FinalScore, p.TotalMarks)
	}

	class := resp.Classification
	if class == "" {
		class = Classify(resp.FinalScore, DefaultThreshold(p.TotalMarks))
	}

	r := Result{
		StudentID:      studentID,
		PaperID:        paperID,
		Score:          resp.FinalScore,
		Classification: class,
		Breakdown:      resp.Breakdown,
		EvaluatedAt:    time.Now().Unix(),
	}
	if err := b.store.SaveResult(ctx, r); err != nil {
		if errors.Is(err, ErrNotSubmitted) {
			// Lost the race to another evaluator; its result stands.
			return b.store.GetResult(ctx, studentID, paperID)
		}
		return Result{}, err
	}

	b.appendEvent(ctx, studentID, paperID, r)
	b.log.Info().Str("student_id", studentID).Str("paper_id", paperID).
		Float64("score", r.Score).Str("classification", string(r.Classification)).Msg("attempt evaluated")
	return r, nil
}

func (b *Broker) appendEvent(ctx context.Context, studentID, paperID string, r Result) {
	if b.events == nil {
		return
	}
	buf, _ := json.Marshal(map[string]any{
		"student_id": studentID, "paper_id": paperID,
		"score": r.Score, "classification": r.Classification,
	})
	if err := b.events.Append(ctx, eventlog.Event{
		Type: eventlog.TypeAttemptEvaluated, Key: attempt.Key(studentID, paperID), DataJSON: string(buf),
	}); err != nil {
		b.log.Warn().Err(err).Msg("event append failed")
	}
}
