package paper

import "context"

type ListOpts struct {
	Status   Status // filter by scrutiny state, empty = all
	CourseID string
	AuthorID string
	Limit    int
	Offset   int
}

type Store interface {
	PutPaper(ctx context.Context, p QuestionPaper) error
	GetPaper(ctx context.Context, id string) (QuestionPaper, error)
	ListPapers(ctx context.Context, opts ListOpts) ([]Summary, error)

	// SetStatus transitions a paper out of `from` only if it is still
	// in `from` (conditional update). A paper already past `from`
	// reports ErrAlreadyReviewed.
	SetStatus(ctx context.Context, id string, from, to Status, reviewerID string, reviewedAt int64) error
}
