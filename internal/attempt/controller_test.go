package attempt

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/paper"
)

func acceptedPaper(id string, marks ...int) paper.QuestionPaper {
	p := paper.QuestionPaper{
		ID:       id,
		CourseID: "CS101",
		ExamName: "Midterm",
		AuthorID: "fac-1",
		Status:   paper.StatusAccepted,
	}
	for i, m := range marks {
		p.Questions = append(p.Questions, paper.Question{ID: i + 1, Prompt: "q", Answer: "a", Marks: m})
		p.TotalMarks += m
	}
	return p
}

func newTestController(t *testing.T, papers ...paper.QuestionPaper) (*Controller, Store) {
	t.Helper()
	ps := paper.NewInMemoryStore()
	for _, p := range papers {
		if err := ps.PutPaper(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}
	as := NewInMemoryStore()
	return NewController(ps, as, nil, zerolog.Nop()), as
}

func TestRecordAnswer_CreatesAttempt(t *testing.T) {
	c, _ := newTestController(t, acceptedPaper("qp-1", 10, 10))
	ctx := context.Background()

	a, err := c.RecordAnswer(ctx, "stu-1", "qp-1", 1, "first answer")
	if err != nil {
		t.Fatal(err)
	}
	if a.State != StateInProgress || a.Answers[1] != "first answer" || a.StartedAt == 0 {
		t.Fatalf("attempt = %+v", a)
	}
}

func TestRecordAnswer_OverwriteWhileInProgress(t *testing.T) {
	c, _ := newTestController(t, acceptedPaper("qp-1", 10))
	ctx := context.Background()

	if _, err := c.RecordAnswer(ctx, "stu-1", "qp-1", 1, "draft"); err != nil {
		t.Fatal(err)
	}
	a, err := c.RecordAnswer(ctx, "stu-1", "qp-1", 1, "final wording")
	if err != nil {
		t.Fatal(err)
	}
	if a.Answers[1] != "final wording" {
		t.Fatalf("answer = %q, want overwrite", a.Answers[1])
	}
}

func TestRecordAnswer_PaperNotAvailable(t *testing.T) {
	pending := acceptedPaper("qp-pending", 10)
	pending.Status = paper.StatusPending
	declined := acceptedPaper("qp-declined", 10)
	declined.Status = paper.StatusDeclined
	c, _ := newTestController(t, pending, declined)
	ctx := context.Background()

	for _, id := range []string{"qp-pending", "qp-declined", "qp-missing"} {
		if _, err := c.RecordAnswer(ctx, "stu-1", id, 1, "x"); !errors.Is(err, ErrPaperNotAvailable) {
			t.Fatalf("paper %s: got %v, want ErrPaperNotAvailable", id, err)
		}
	}
}

func TestRecordAnswer_UnknownQuestion(t *testing.T) {
	c, _ := newTestController(t, acceptedPaper("qp-1", 10))
	if _, err := c.RecordAnswer(context.Background(), "stu-1", "qp-1", 99, "x"); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("got %v, want ErrUnknownQuestion", err)
	}
}

func TestSubmit_IncompleteSubmission(t *testing.T) {
	// Three questions, only two answered: submit must be refused and
	// the attempt must remain open.
	c, _ := newTestController(t, acceptedPaper("qp-1", 5, 5, 10))
	ctx := context.Background()

	mustRecord(t, c, "stu-1", "qp-1", 1, "answer one")
	mustRecord(t, c, "stu-1", "qp-1", 2, "answer two")

	if _, err := c.Submit(ctx, "stu-1", "qp-1"); !errors.Is(err, ErrIncompleteSubmission) {
		t.Fatalf("got %v, want ErrIncompleteSubmission", err)
	}

	a, err := c.Get(ctx, "stu-1", "qp-1")
	if err != nil {
		t.Fatal(err)
	}
	if a.State != StateInProgress {
		t.Fatalf("state = %q after refused submit, want in_progress", a.State)
	}

	// Whitespace is not an answer.
	mustRecord(t, c, "stu-1", "qp-1", 3, "   ")
	if _, err := c.Submit(ctx, "stu-1", "qp-1"); !errors.Is(err, ErrIncompleteSubmission) {
		t.Fatalf("blank answer: got %v, want ErrIncompleteSubmission", err)
	}
}

func TestSubmit_Complete(t *testing.T) {
	c, store := newTestController(t, acceptedPaper("qp-1", 10, 10))
	ctx := context.Background()

	mustRecord(t, c, "stu-1", "qp-1", 1, "one")
	mustRecord(t, c, "stu-1", "qp-1", 2, "two")

	a, err := c.Submit(ctx, "stu-1", "qp-1")
	if err != nil {
		t.Fatal(err)
	}
	if a.State != StateSubmitted || a.SubmittedAt == 0 {
		t.Fatalf("attempt = %+v", a)
	}

	got, err := store.Get(ctx, "stu-1", "qp-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != StateSubmitted {
		t.Fatalf("stored state = %q, want submitted", got.State)
	}
}

func TestSubmit_DuplicateAndFrozenAnswers(t *testing.T) {
	c, _ := newTestController(t, acceptedPaper("qp-1", 10))
	ctx := context.Background()

	mustRecord(t, c, "stu-1", "qp-1", 1, "original")
	if _, err := c.Submit(ctx, "stu-1", "qp-1"); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Submit(ctx, "stu-1", "qp-1"); !errors.Is(err, ErrDuplicateSubmission) {
		t.Fatalf("resubmit: got %v, want ErrDuplicateSubmission", err)
	}
	if _, err := c.RecordAnswer(ctx, "stu-1", "qp-1", 1, "tampered"); !errors.Is(err, ErrDuplicateSubmission) {
		t.Fatalf("post-submit write: got %v, want ErrDuplicateSubmission", err)
	}

	a, _ := c.Get(ctx, "stu-1", "qp-1")
	if a.Answers[1] != "original" {
		t.Fatalf("answer = %q, submitted answers must not change", a.Answers[1])
	}
}

func TestSubmit_NotStarted(t *testing.T) {
	c, _ := newTestController(t, acceptedPaper("qp-1", 10))
	if _, err := c.Submit(context.Background(), "stu-1", "qp-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSubmit_ConcurrentExactlyOneWins(t *testing.T) {
	c, _ := newTestController(t, acceptedPaper("qp-1", 10))
	ctx := context.Background()
	mustRecord(t, c, "stu-1", "qp-1", 1, "answer")

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Submit(ctx, "stu-1", "qp-1")
		}(i)
	}
	wg.Wait()

	wins, dups := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrDuplicateSubmission):
			dups++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || dups != n-1 {
		t.Fatalf("wins=%d dups=%d, want exactly one winner", wins, dups)
	}
}

func TestAttemptsAreIndependentAcrossPairs(t *testing.T) {
	c, _ := newTestController(t, acceptedPaper("qp-1", 10), acceptedPaper("qp-2", 10))
	ctx := context.Background()

	mustRecord(t, c, "stu-1", "qp-1", 1, "a")
	if _, err := c.Submit(ctx, "stu-1", "qp-1"); err != nil {
		t.Fatal(err)
	}

	// Same student, other paper: still writable.
	if _, err := c.RecordAnswer(ctx, "stu-1", "qp-2", 1, "b"); err != nil {
		t.Fatalf("other paper: %v", err)
	}
	// Other student, same paper: still writable.
	if _, err := c.RecordAnswer(ctx, "stu-2", "qp-1", 1, "c"); err != nil {
		t.Fatalf("other student: %v", err)
	}
}

func mustRecord(t *testing.T, c *Controller, studentID, paperID string, qid int, text string) {
	t.Helper()
	if _, err := c.RecordAnswer(context.Background(), studentID, paperID, qid, text); err != nil {
		t.Fatalf("RecordAnswer(%s,%s,%d): %v", studentID, paperID, qid, err)
	}
}
