package attempt

import "errors"

var (
	ErrPaperNotAvailable    = errors.New("paper is not open for attempts")
	ErrUnknownQuestion      = errors.New("question does not exist on this paper")
	ErrIncompleteSubmission = errors.New("all questions must be answered before submitting")
	ErrDuplicateSubmission  = errors.New("attempt has already been submitted")
	ErrNotFound             = errors.New("attempt not found")
)
