package grading

import (
	"context"
	"errors"

	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/attempt"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/paper"
)

// DefaultThreshold is half the paper's budget, used when the external
// grader returns no classification of its own.
func DefaultThreshold(totalMarks int) float64 { return float64(totalMarks) / 2 }

// Classify is the deterministic pass/fail comparison on raw score.
func Classify(score, threshold float64) Classification {
	if score >= threshold {
		return ClassPass
	}
	return ClassFail
}

// ProgressEntry joins one accepted paper with the student's attempt
// state and, once evaluated, the result.
type ProgressEntry struct {
	Paper  paper.Summary `json:"paper"`
	State  attempt.State `json:"attempt_state"`
	Result *Result       `json:"result,omitempty"`
}

type PaperLister interface {
	ListPapers(ctx context.Context, opts paper.ListOpts) ([]paper.Summary, error)
}

type AttemptLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]attempt.Attempt, error)
}

// Aggregator is the read side: it splits a student's accepted papers
// into assigned/pending and completed for the display layer. Each call
// recomputes from the stores.
type Aggregator struct {
	papers   PaperLister
	attempts AttemptLister
	results  Store
}

func NewAggregator(papers PaperLister, attempts AttemptLister, results Store) *Aggregator {
	return &Aggregator{papers: papers, attempts: attempts, results: results}
}

func (g *Aggregator) Summarize(ctx context.Context, studentID string) ([]ProgressEntry, error) {
	accepted, err := g.papers.ListPapers(ctx, paper.ListOpts{Status: paper.StatusAccepted})
	if err != nil {
		return nil, err
	}
	attempts, err := g.attempts.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	byPaper := make(map[string]attempt.Attempt, len(attempts))
	for _, a := range attempts {
		byPaper[a.PaperID] = a
	}

	out := make([]ProgressEntry, 0, len(accepted))
	for _, sum := range accepted {
		entry := ProgressEntry{Paper: sum, State: attempt.StateNotStarted}
		if a, ok := byPaper[sum.ID]; ok {
			entry.State = a.State
			if a.State == attempt.StateEvaluated {
				r, err := g.results.GetResult(ctx, studentID, sum.ID)
				if err == nil {
					entry.Result = &r
				} else if !errors.Is(err, ErrResultNotFound) {
					return nil, err
				}
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
