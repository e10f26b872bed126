package gradehttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/grading"
)

// fakeGraderService serves both the token endpoint and the grade
// endpoint so the client's full OAuth2 round trip is exercised.
func fakeGraderService(t *testing.T, gradeStatus int, gradeBody any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v1/grade", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		var req grading.GradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		if req.PaperID == "" || req.StudentID == "" || len(req.Answers) == 0 {
			t.Errorf("incomplete grade request: %+v", req)
		}
		w.WriteHeader(gradeStatus)
		_ = json.NewEncoder(w).Encode(gradeBody)
	})
	return httptest.NewServer(mux)
}

func newTestClient(srv *httptest.Server) *Client {
	return New(Config{
		BaseURL:      srv.URL,
		TokenURL:     srv.URL + "/oauth/token",
		ClientID:     "engine",
		ClientSecret: "secret",
	})
}

func TestClient_Grade(t *testing.T) {
	srv := fakeGraderService(t, http.StatusOK, map[string]any{
		"final_score":    14.0,
		"classification": "pass",
		"per_question":   map[string]any{"1": map[string]any{"score": 14}},
	})
	defer srv.Close()

	c := newTestClient(srv)
	resp, err := c.Grade(context.Background(), grading.GradeRequest{
		PaperID:   "qp-1",
		StudentID: "stu-1",
		Answers:   map[int]string{1: "an answer"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.FinalScore != 14 || resp.Classification != grading.ClassPass {
		t.Fatalf("resp = %+v", resp)
	}
	if len(resp.Breakdown) != 1 {
		t.Fatalf("breakdown = %+v, want one entry", resp.Breakdown)
	}
}

func TestClient_GradeUpstreamError(t *testing.T) {
	srv := fakeGraderService(t, http.StatusBadGateway, map[string]any{"error": "model overloaded"})
	defer srv.Close()

	c := newTestClient(srv)
	if _, err := c.Grade(context.Background(), grading.GradeRequest{
		PaperID:   "qp-1",
		StudentID: "stu-1",
		Answers:   map[int]string{1: "x"},
	}); err == nil {
		t.Fatal("want error on non-2xx grade response")
	}
}

func TestClient_GradeMalformedPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "t", "token_type": "Bearer"})
	})
	mux.HandleFunc("/v1/grade", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv)
	if _, err := c.Grade(context.Background(), grading.GradeRequest{
		PaperID: "qp-1", StudentID: "stu-1", Answers: map[int]string{1: "x"},
	}); err == nil {
		t.Fatal("want decode error for malformed payload")
	}
}
