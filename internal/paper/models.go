package paper

// Status is the scrutiny state of a finalized question paper.
// Pending papers are waiting for review; only accepted papers are
// assignable to students. Accepted and declined are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

func (s Status) Terminal() bool { return s == StatusAccepted || s == StatusDeclined }

// Question is owned by its paper; IDs are 1-based and contiguous.
// JSON tags follow the qap payload shape used by the record store:
// "question" is the prompt shown to students, "prompt" is the optional
// rubric hint for the grader, "answer" is the model answer.
type Question struct {
	ID     int    `json:"qid"`
	Prompt string `json:"question"`
	Answer string `json:"answer,omitempty"`
	Hint   string `json:"prompt,omitempty"`
	Marks  int    `json:"marks"`
}

type QuestionPaper struct {
	ID           string     `json:"id"`
	CourseID     string     `json:"course_id"`
	ExamName     string     `json:"exam_name"`
	AcademicTerm string     `json:"academic_term"`
	AuthorID     string     `json:"author_id"`
	TotalMarks   int        `json:"total_marks"`
	Questions    []Question `json:"questions"`
	Status       Status     `json:"status"`
	ReviewedBy   string     `json:"reviewed_by,omitempty"`
	CreatedAt    int64      `json:"created_at,omitempty"`
	ReviewedAt   int64      `json:"reviewed_at,omitempty"`
}

// Summary is the listing view (no question bodies).
type Summary struct {
	ID         string `json:"id"`
	CourseID   string `json:"course_id"`
	ExamName   string `json:"exam_name"`
	AuthorID   string `json:"author_id"`
	TotalMarks int    `json:"total_marks"`
	Status     Status `json:"status"`
	CreatedAt  int64  `json:"created_at,omitempty"`
}

// StudentView strips model answers and rubric hints before a paper is
// served to an examinee.
func (p QuestionPaper) StudentView() QuestionPaper {
	qs := make([]Question, len(p.Questions))
	copy(qs, p.Questions)
	for i := range qs {
		qs[i].Answer = ""
		qs[i].Hint = ""
	}
	p.Questions = qs
	return p
}
