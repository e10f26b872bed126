package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/attempt"
	auth "github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/auth/middleware"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/grading"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/paper"
)

// Student flow: assignment feed, answer writes, submit.

func ListAssignmentsHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListAssignable(r.Context(), r.URL.Query().Get("course_id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

// GetAssignmentHandler serves an accepted paper with model answers and
// rubric hints stripped.
func GetAssignmentHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "paperID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		if p.Status != paper.StatusAccepted {
			writeErr(w, attempt.ErrPaperNotAvailable)
			return
		}
		_ = json.NewEncoder(w).Encode(p.StudentView())
	}
}

func RecordAnswerHandler(ctrl *attempt.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paperID := chi.URLParam(r, "paperID")
		var req struct {
			QuestionID int    `json:"qid"`
			Text       string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		studentID := auth.SubjectFromContext(r.Context())
		a, err := ctrl.RecordAnswer(r.Context(), studentID, paperID, req.QuestionID, req.Text)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

// SubmitAttemptHandler performs the atomic submit, then kicks off
// evaluation in its own unit of work so the response is not held on
// the external grader.
func SubmitAttemptHandler(ctrl *attempt.Controller, broker *grading.Broker, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paperID := chi.URLParam(r, "paperID")
		studentID := auth.SubjectFromContext(r.Context())
		a, err := ctrl.Submit(r.Context(), studentID, paperID)
		if err != nil {
			writeErr(w, err)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if _, err := broker.Evaluate(ctx, studentID, paperID); err != nil {
				// Attempt stays submitted; evaluation can be retried.
				log.Warn().Err(err).Str("student_id", studentID).Str("paper_id", paperID).Msg("async evaluation failed")
			}
		}()
		_ = json.NewEncoder(w).Encode(a)
	}
}

func GetAttemptHandler(ctrl *attempt.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paperID := chi.URLParam(r, "paperID")
		studentID := auth.SubjectFromContext(r.Context())
		a, err := ctrl.Get(r.Context(), studentID, paperID)
		if errors.Is(err, attempt.ErrNotFound) {
			_ = json.NewEncoder(w).Encode(attempt.Attempt{
				StudentID: studentID, PaperID: paperID, State: attempt.StateNotStarted,
			})
			return
		}
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}
