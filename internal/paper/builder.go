package paper

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Draft assembles a question paper under the budget validator. A draft
// belongs to a single author and is mutable only until Finalize
// succeeds; after that every AddQuestion fails with ErrPaperFinalized.
type Draft struct {
	paper     QuestionPaper
	sum       int
	finalized bool
}

// NewDraft opens a draft. paperID may be empty, in which case one is
// generated.
func NewDraft(paperID, courseID, examName, academicTerm, authorID string, totalMarks int) (*Draft, error) {
	if totalMarks <= 0 {
		return nil, ErrInvalidBudget
	}
	if paperID == "" {
		paperID = uuid.NewString()
	}
	return &Draft{
		paper: QuestionPaper{
			ID:           paperID,
			CourseID:     courseID,
			ExamName:     examName,
			AcademicTerm: academicTerm,
			AuthorID:     authorID,
			TotalMarks:   totalMarks,
		},
	}, nil
}

// AddQuestion assigns the next 1-based local ID and appends, running
// the incremental budget check first. The hint is optional.
func (d *Draft) AddQuestion(prompt, answer, hint string, marks int) (Question, error) {
	if d.finalized {
		return Question{}, ErrPaperFinalized
	}
	if strings.TrimSpace(prompt) == "" || strings.TrimSpace(answer) == "" || marks == 0 {
		return Question{}, ErrIncompleteField
	}
	if err := ValidateAddition(d.sum, marks, d.paper.TotalMarks); err != nil {
		return Question{}, err
	}
	q := Question{
		ID:     len(d.paper.Questions) + 1,
		Prompt: prompt,
		Answer: answer,
		Hint:   hint,
		Marks:  marks,
	}
	d.paper.Questions = append(d.paper.Questions, q)
	d.sum += marks
	return q, nil
}

// CurrentSum is the running total of added question marks.
func (d *Draft) CurrentSum() int { return d.sum }

// Remaining is how many marks are still unallocated.
func (d *Draft) Remaining() int { return d.paper.TotalMarks - d.sum }

// Paper returns a snapshot of the draft's paper so far.
func (d *Draft) Paper() QuestionPaper {
	p := d.paper
	p.Questions = append([]Question(nil), d.paper.Questions...)
	return p
}

// Finalize freezes the question list and hands the paper to the
// scrutiny gate as pending. On a budget mismatch the draft stays open
// for correction.
func (d *Draft) Finalize() (QuestionPaper, error) {
	if d.finalized {
		return QuestionPaper{}, ErrPaperFinalized
	}
	if err := ValidateFinal(d.sum, d.paper.TotalMarks); err != nil {
		return QuestionPaper{}, err
	}
	d.finalized = true
	d.paper.Status = StatusPending
	d.paper.CreatedAt = time.Now().Unix()
	return d.Paper(), nil
}
