package grading

import (
	"context"
	"testing"

	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/paper"
)

func TestScoreAnswer(t *testing.T) {
	tests := []struct {
		name     string
		response string
		key      string
		marks    float64
		want     float64
	}{
		{"exact", "mitochondria", "mitochondria", 10, 10},
		{"case and punctuation", "The Mitochondria!", "the mitochondria", 10, 10},
		{"numeric with unit", "3.14 kg", "3.14", 5, 5},
		{"numeric off", "2.5", "3.14", 5, 0},
		{"one typo", "mitochondira", "mitochondria", 10, 5},
		{"wrong", "chloroplast", "mitochondria", 10, 0},
		{"empty response", "", "mitochondria", 10, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoreAnswer(tc.response, tc.key, tc.marks, 1); got != tc.want {
				t.Fatalf("scoreAnswer(%q,%q) = %v, want %v", tc.response, tc.key, got, tc.want)
			}
		})
	}
}

func TestLocalGrader_Grade(t *testing.T) {
	papers := fakePapers{"qp-1": {
		ID:         "qp-1",
		TotalMarks: 20,
		Status:     paper.StatusAccepted,
		Questions: []paper.Question{
			{ID: 1, Prompt: "Powerhouse of the cell?", Answer: "mitochondria", Marks: 12},
			{ID: 2, Prompt: "Value of pi to 2dp?", Answer: "3.14", Marks: 8},
		},
	}}

	g := NewLocalGrader(papers)
	resp, err := g.Grade(context.Background(), GradeRequest{
		PaperID:   "qp-1",
		StudentID: "stu-1",
		Answers:   map[int]string{1: "Mitochondria.", 2: "3.14"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.FinalScore != 20 {
		t.Fatalf("score = %v, want 20", resp.FinalScore)
	}
	if len(resp.Breakdown) != 2 {
		t.Fatalf("breakdown = %+v, want per-question entries", resp.Breakdown)
	}
	// Leaves classification to the broker's threshold.
	if resp.Classification != "" {
		t.Fatalf("classification = %q, want empty", resp.Classification)
	}
}
