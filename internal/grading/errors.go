package grading

import "errors"

var (
	// ErrEvaluationUnavailable marks transient external-grader failures;
	// the attempt stays submitted and the call is safe to retry.
	ErrEvaluationUnavailable = errors.New("evaluation service unavailable")

	ErrNotSubmitted   = errors.New("attempt has not been submitted")
	ErrResultNotFound = errors.New("result not found")
)
