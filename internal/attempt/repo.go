package attempt

import "context"

type Store interface {
	Get(ctx context.Context, studentID, paperID string) (Attempt, error)

	// Upsert writes an in_progress attempt (create or answer update).
	Upsert(ctx context.Context, a Attempt) error

	// TransitionSubmit persists the submitted state and the full answer
	// set as one atomic unit, conditional on the attempt still being
	// in_progress. A lost race reports ErrDuplicateSubmission.
	TransitionSubmit(ctx context.Context, studentID, paperID string, answers map[int]string, submittedAt int64) error

	ListByStudent(ctx context.Context, studentID string) ([]Attempt, error)
}
