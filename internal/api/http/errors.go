package http

import (
	"errors"
	"net/http"

	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/attempt"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/grading"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/paper"
)

// statusFor maps the engine's error taxonomy onto HTTP statuses:
// validation errors are 400 (correct and resend), stale-state errors
// are 409 (refresh, don't retry blindly), and grader outages are 502
// (retryable).
func statusFor(err error) int {
	switch {
	case errors.Is(err, paper.ErrNotFound),
		errors.Is(err, paper.ErrDraftNotFound),
		errors.Is(err, attempt.ErrNotFound),
		errors.Is(err, grading.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, paper.ErrInvalidBudget),
		errors.Is(err, paper.ErrBudgetExceeded),
		errors.Is(err, paper.ErrBudgetMismatch),
		errors.Is(err, paper.ErrIncompleteField),
		errors.Is(err, attempt.ErrUnknownQuestion),
		errors.Is(err, attempt.ErrIncompleteSubmission):
		return http.StatusBadRequest
	case errors.Is(err, paper.ErrPaperFinalized),
		errors.Is(err, paper.ErrAlreadyReviewed),
		errors.Is(err, attempt.ErrDuplicateSubmission),
		errors.Is(err, grading.ErrNotSubmitted):
		return http.StatusConflict
	case errors.Is(err, attempt.ErrPaperNotAvailable):
		return http.StatusForbidden
	case errors.Is(err, grading.ErrEvaluationUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}
