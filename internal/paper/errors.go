package paper

import "errors"

var (
	ErrInvalidBudget   = errors.New("total marks must be a positive integer")
	ErrBudgetExceeded  = errors.New("question would exceed the paper's total marks")
	ErrBudgetMismatch  = errors.New("question marks do not add up to total marks")
	ErrIncompleteField = errors.New("question prompt, answer and marks are required")
	ErrPaperFinalized  = errors.New("paper is finalized and can no longer change")
	ErrAlreadyReviewed = errors.New("paper has already been reviewed")
	ErrNotFound        = errors.New("paper not found")
	ErrDraftNotFound   = errors.New("draft not found")
)
