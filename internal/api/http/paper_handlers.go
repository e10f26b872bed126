package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/auth/middleware"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/paper"
)

// Authoring flow: a faculty member opens a draft, adds questions under
// the budget check, and finalizes into the scrutiny queue.

func StartDraftHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CourseID     string `json:"course_id"`
			ExamName     string `json:"exam_name"`
			AcademicTerm string `json:"academic_term"`
			TotalMarks   int    `json:"total_marks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.CourseID == "" || req.ExamName == "" {
			http.Error(w, "course_id and exam_name required", http.StatusBadRequest)
			return
		}
		authorID := auth.SubjectFromContext(r.Context())
		draftID, err := svc.StartDraft(req.CourseID, req.ExamName, req.AcademicTerm, authorID, req.TotalMarks)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"draft_id": draftID})
	}
}

func AddQuestionHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draftID := chi.URLParam(r, "draftID")
		var req struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
			Prompt   string `json:"prompt"` // optional rubric hint
			Marks    int    `json:"marks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		q, err := svc.AddQuestion(draftID, req.Question, req.Answer, req.Prompt, req.Marks)
		if err != nil {
			writeErr(w, err)
			return
		}
		_, sum, err := svc.DraftPaper(draftID)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"question": q, "current_marks": sum})
	}
}

func FinalizeDraftHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draftID := chi.URLParam(r, "draftID")
		p, err := svc.FinalizeDraft(r.Context(), draftID)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	}
}

func ListPapersHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := paper.ListOpts{
			CourseID: r.URL.Query().Get("course_id"),
			Status:   paper.Status(r.URL.Query().Get("status")),
		}
		if r.URL.Query().Get("mine") == "1" {
			opts.AuthorID = auth.SubjectFromContext(r.Context())
		}
		out, err := svc.List(r.Context(), opts)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func GetPaperHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "paperID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	}
}

// Scrutiny flow.

func ListPendingReviewHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListPendingReview(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func ReviewPaperHandler(svc *paper.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paperID := chi.URLParam(r, "paperID")
		var req struct {
			Decision string `json:"decision"` // accept|decline
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Decision != "accept" && req.Decision != "decline" {
			http.Error(w, "decision must be accept or decline", http.StatusBadRequest)
			return
		}
		reviewerID := auth.SubjectFromContext(r.Context())
		p, err := svc.Review(r.Context(), paperID, reviewerID, req.Decision == "accept")
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	}
}
