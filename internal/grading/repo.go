package grading

import "context"

type Store interface {
	GetResult(ctx context.Context, studentID, paperID string) (Result, error)

	// SaveResult persists the result and flips the attempt from
	// submitted to evaluated as one atomic unit. If the attempt is no
	// longer submitted the whole write is rejected with ErrNotSubmitted,
	// so a result can never exist without an evaluated attempt.
	SaveResult(ctx context.Context, r Result) error

	ListResultsByStudent(ctx context.Context, studentID string) ([]Result, error)
}
