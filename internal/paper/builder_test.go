package paper

import (
	"errors"
	"testing"
)

func TestNewDraft_InvalidBudget(t *testing.T) {
	for _, budget := range []int{0, -5} {
		if _, err := NewDraft("", "CS101", "Midterm", "2024-25", "fac-1", budget); !errors.Is(err, ErrInvalidBudget) {
			t.Fatalf("budget %d: got %v, want ErrInvalidBudget", budget, err)
		}
	}
}

func TestDraft_FinalizeExactBudget(t *testing.T) {
	d, err := NewDraft("qp-1", "CS101", "Midterm", "2024-25", "fac-1", 20)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.AddQuestion("Define a deadlock.", "Circular wait over shared resources.", "", 12); err != nil {
		t.Fatalf("first question: %v", err)
	}
	if _, err := d.AddQuestion("Name two scheduling policies.", "Round robin; shortest job first.", "either order", 8); err != nil {
		t.Fatalf("second question: %v", err)
	}

	p, err := d.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if p.Status != StatusPending {
		t.Fatalf("status = %q, want pending", p.Status)
	}
	if len(p.Questions) != 2 || p.Questions[0].ID != 1 || p.Questions[1].ID != 2 {
		t.Fatalf("unexpected question IDs: %+v", p.Questions)
	}
	sum := 0
	for _, q := range p.Questions {
		sum += q.Marks
	}
	if sum != p.TotalMarks {
		t.Fatalf("sum %d != budget %d", sum, p.TotalMarks)
	}
}

func TestDraft_BudgetExceededLeavesDraftUnchanged(t *testing.T) {
	d, _ := NewDraft("qp-2", "CS101", "Midterm", "2024-25", "fac-1", 20)
	mustAdd(t, d, "q1", "a1", 12)
	mustAdd(t, d, "q2", "a2", 8)
	if _, err := d.AddQuestion("q3", "a3", "", 1); !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("got %v, want ErrBudgetExceeded", err)
	}
	if d.CurrentSum() != 20 || len(d.Paper().Questions) != 2 {
		t.Fatalf("draft changed after rejected addition: sum=%d n=%d", d.CurrentSum(), len(d.Paper().Questions))
	}
}

func TestDraft_OverfullAddition(t *testing.T) {
	// budget=20, questions of 12 and 10: the second addition itself
	// overflows and must be rejected before it lands.
	d, _ := NewDraft("qp-3", "CS101", "Quiz", "2024-25", "fac-1", 20)
	mustAdd(t, d, "q1", "a1", 12)
	if _, err := d.AddQuestion("q2", "a2", "", 10); !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("got %v, want ErrBudgetExceeded", err)
	}
	if d.CurrentSum() != 12 {
		t.Fatalf("sum = %d, want 12", d.CurrentSum())
	}
}

func TestDraft_IncompleteField(t *testing.T) {
	d, _ := NewDraft("qp-4", "CS101", "Quiz", "2024-25", "fac-1", 10)
	cases := []struct {
		prompt, answer string
		marks          int
	}{
		{"", "a", 5},
		{"q", "", 5},
		{"q", "a", 0},
		{"   ", "a", 5},
	}
	for _, c := range cases {
		if _, err := d.AddQuestion(c.prompt, c.answer, "", c.marks); !errors.Is(err, ErrIncompleteField) {
			t.Fatalf("AddQuestion(%q,%q,%d) = %v, want ErrIncompleteField", c.prompt, c.answer, c.marks, err)
		}
	}
}

func TestDraft_IncompleteFinalizeKeepsDraftOpen(t *testing.T) {
	d, _ := NewDraft("qp-5", "CS101", "Quiz", "2024-25", "fac-1", 20)
	mustAdd(t, d, "q1", "a1", 12)
	if _, err := d.Finalize(); !errors.Is(err, ErrBudgetMismatch) {
		t.Fatalf("got %v, want ErrBudgetMismatch", err)
	}
	// Draft stays open for correction.
	mustAdd(t, d, "q2", "a2", 8)
	if _, err := d.Finalize(); err != nil {
		t.Fatalf("finalize after correction: %v", err)
	}
}

func TestDraft_FrozenAfterFinalize(t *testing.T) {
	d, _ := NewDraft("qp-6", "CS101", "Quiz", "2024-25", "fac-1", 10)
	mustAdd(t, d, "q1", "a1", 10)
	if _, err := d.Finalize(); err != nil {
		t.Fatal(err)
	}
	if _, err := d.AddQuestion("late", "late", "", 1); !errors.Is(err, ErrPaperFinalized) {
		t.Fatalf("got %v, want ErrPaperFinalized", err)
	}
	if _, err := d.Finalize(); !errors.Is(err, ErrPaperFinalized) {
		t.Fatalf("second finalize: got %v, want ErrPaperFinalized", err)
	}
}

func TestStudentView_StripsAnswers(t *testing.T) {
	d, _ := NewDraft("qp-7", "CS101", "Quiz", "2024-25", "fac-1", 10)
	mustAdd(t, d, "q1", "secret answer", 10)
	p, _ := d.Finalize()
	sv := p.StudentView()
	if sv.Questions[0].Answer != "" || sv.Questions[0].Hint != "" {
		t.Fatalf("student view leaked answer/hint: %+v", sv.Questions[0])
	}
	if p.Questions[0].Answer == "" {
		t.Fatal("StudentView mutated the source paper")
	}
}

func mustAdd(t *testing.T, d *Draft, prompt, answer string, marks int) {
	t.Helper()
	if _, err := d.AddQuestion(prompt, answer, "", marks); err != nil {
		t.Fatalf("AddQuestion(%q): %v", prompt, err)
	}
}
