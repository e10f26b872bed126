package grading

import (
	"context"
	"encoding/json"
)

// GradeRequest is what the engine sends to the external grading
// collaborator: identity plus the full answer set.
type GradeRequest struct {
	PaperID   string         `json:"paper_id"`
	StudentID string         `json:"student_id"`
	Answers   map[int]string `json:"answers"`
}

// GradeResponse is the structured score payload. Breakdown is opaque to
// the engine and stored verbatim. Classification is optional; when the
// grader supplies one it is trusted and not recomputed.
type GradeResponse struct {
	FinalScore     float64                    `json:"final_score"`
	Breakdown      map[string]json.RawMessage `json:"per_question,omitempty"`
	Classification Classification             `json:"classification,omitempty"`
}

// Grader is the external grading collaborator. Implementations are
// expected to be network-backed and fallible; the broker owns
// idempotent reconciliation of retries.
type Grader interface {
	Grade(ctx context.Context, req GradeRequest) (GradeResponse, error)
}
