package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/auth/middleware"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/grading"
)

// EvaluateAttemptHandler retries evaluation for a submitted attempt.
// The broker makes this idempotent: an already-evaluated attempt just
// returns its stored result.
func EvaluateAttemptHandler(broker *grading.Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paperID := chi.URLParam(r, "paperID")
		studentID := r.URL.Query().Get("student_id")
		if studentID == "" {
			studentID = auth.SubjectFromContext(r.Context())
		}
		res, err := broker.Evaluate(r.Context(), studentID, paperID)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

func GetResultHandler(store grading.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paperID := chi.URLParam(r, "paperID")
		studentID := auth.SubjectFromContext(r.Context())
		res, err := store.GetResult(r.Context(), studentID, paperID)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

// ListResultsHandler returns every evaluated result for the caller,
// newest first.
func ListResultsHandler(store grading.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := auth.SubjectFromContext(r.Context())
		out, err := store.ListResultsByStudent(r.Context(), studentID)
		if err != nil {
			writeErr(w, err)
			return
		}
		if out == nil {
			out = []grading.Result{}
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

// SummaryHandler is the read-side join used by the dashboard to split
// assigned/pending from completed.
func SummaryHandler(agg *grading.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := auth.SubjectFromContext(r.Context())
		out, err := agg.Summarize(r.Context(), studentID)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
