package grading

import "encoding/json"

type Classification string

const (
	ClassPass Classification = "pass"
	ClassFail Classification = "fail"
)

// Result exists only for an evaluated attempt; the broker creates it
// inside the same transaction that marks the attempt evaluated.
type Result struct {
	StudentID      string                     `json:"student_id"`
	PaperID        string                     `json:"paper_id"`
	Score          float64                    `json:"score"`
	Classification Classification             `json:"classification"`
	Breakdown      map[string]json.RawMessage `json:"per_question,omitempty"`
	EvaluatedAt    int64                      `json:"evaluated_at"`
}
