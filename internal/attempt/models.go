package attempt

// State transitions are strictly forward:
// not_started -> in_progress -> submitted -> evaluated.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateSubmitted  State = "submitted"
	StateEvaluated  State = "evaluated"
)

// Attempt is a student's single pass through a paper. The
// (StudentID, PaperID) pair is the identity; there is never a second
// row for the same pair.
type Attempt struct {
	StudentID   string         `json:"student_id"`
	PaperID     string         `json:"paper_id"`
	State       State          `json:"state"`
	Answers     map[int]string `json:"answers"` // question local ID -> free text
	StartedAt   int64          `json:"started_at,omitempty"`
	SubmittedAt int64          `json:"submitted_at,omitempty"`
	EvaluatedAt int64          `json:"evaluated_at,omitempty"`
}

func Key(studentID, paperID string) string { return studentID + "|" + paperID }
