package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	api "github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/api/http"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/attempt"
	auth "github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/auth/middleware"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/config"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/db"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/eventlog"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/grading"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/grading/gradehttp"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/paper"
	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/rbac"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db open failed")
	}

	events := eventlog.NewRepo(dbh)
	paperStore := paper.NewSQLStore(dbh)
	attemptStore := attempt.NewSQLStore(dbh)
	resultStore := grading.NewSQLStore(dbh)

	papers := paper.NewService(paperStore, events, log)
	attempts := attempt.NewController(paperStore, attemptStore, events, log)

	var grader grading.Grader = grading.NewLocalGrader(paperStore)
	if cfg.Grader.BaseURL != "" {
		grader = gradehttp.New(gradehttp.Config{
			BaseURL:      cfg.Grader.BaseURL,
			TokenURL:     cfg.Grader.TokenURL,
			ClientID:     cfg.Grader.ClientID,
			ClientSecret: cfg.Grader.ClientSecret,
			Timeout:      cfg.Grader.Timeout,
		})
	} else {
		log.Info().Msg("no grader endpoint configured, using local answer matching")
	}
	broker := grading.NewBroker(attemptStore, paperStore, resultStore, grader, events, cfg.Grader.Timeout, log)
	agg := grading.NewAggregator(paperStore, attemptStore, resultStore)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(log), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT -> role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.AllowClaimRoleFallback))

		// Faculty authoring
		pr.With(rbac.Require("paper:create")).
			Post("/papers/drafts", api.StartDraftHandler(papers))
		pr.With(rbac.Require("paper:create")).
			Post("/papers/drafts/{draftID}/questions", api.AddQuestionHandler(papers))
		pr.With(rbac.Require("paper:create")).
			Post("/papers/drafts/{draftID}/finalize", api.FinalizeDraftHandler(papers))
		pr.With(rbac.RequireAny("paper:create", "paper:review")).
			Get("/papers", api.ListPapersHandler(papers))
		pr.With(rbac.RequireAny("paper:create", "paper:review")).
			Get("/papers/{paperID}", api.GetPaperHandler(papers))

		// Scrutiny gate
		pr.With(rbac.Require("paper:review")).
			Get("/scrutiny/pending", api.ListPendingReviewHandler(papers))
		pr.With(rbac.Require("paper:review")).
			Post("/papers/{paperID}/review", api.ReviewPaperHandler(papers))

		// Student flow
		pr.With(rbac.Require("paper:view")).
			Get("/assignments", api.ListAssignmentsHandler(papers))
		pr.With(rbac.Require("paper:view")).
			Get("/assignments/{paperID}", api.GetAssignmentHandler(papers))
		pr.With(rbac.Require("attempt:save")).
			Put("/assignments/{paperID}/answers", api.RecordAnswerHandler(attempts))
		pr.With(rbac.Require("attempt:submit")).
			Post("/assignments/{paperID}/submit", api.SubmitAttemptHandler(attempts, broker, log))
		pr.With(rbac.Require("attempt:view-own")).
			Get("/assignments/{paperID}/attempt", api.GetAttemptHandler(attempts))

		// Accounts
		pr.With(rbac.Require("user:manage")).
			Post("/users", api.CreateUserHandler(dbh))
		pr.With(rbac.Require("user:manage")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.Post("/me/password", api.ChangePasswordHandler(dbh))

		// Results
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
			Get("/results/{paperID}", api.GetResultHandler(resultStore))
		pr.With(rbac.Require("result:view-own")).
			Get("/me/results", api.ListResultsHandler(resultStore))
		pr.With(rbac.Require("result:view-own")).
			Get("/me/summary", api.SummaryHandler(agg))
		pr.With(rbac.RequireAny("result:view-all", "result:view-own")).
			Post("/assignments/{paperID}/evaluate", api.EvaluateAttemptHandler(broker))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info().Str("addr", cfg.HTTPAddr).Str("db", cfg.DBDriver).Msg("listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
