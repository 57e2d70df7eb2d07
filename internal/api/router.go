package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/register", apiHandler.RegisterHandler)
		r.Post("/login", apiHandler.LoginHandler)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// User-authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			r.Get("/onboarding", apiHandler.GetOnboardingHandler)
			r.Post("/onboarding", apiHandler.PostOnboardingHandler)

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", apiHandler.ListTransactionsHandler)
				r.Post("/", apiHandler.CreateTransactionHandler)
				r.Get("/{id}", apiHandler.GetTransactionHandler)
				r.Put("/{id}", apiHandler.UpdateTransactionHandler)
				r.Delete("/{id}", apiHandler.DeleteTransactionHandler)
			})

			r.Get("/goals", apiHandler.ListGoalsHandler)
			r.Post("/goals", apiHandler.CreateGoalHandler)
			r.Post("/goals/insights", apiHandler.GoalInsightsHandler)

			r.Get("/summary", apiHandler.MonthSummaryHandler)

			// Mentor hub
			r.Get("/mentor/questions", apiHandler.QuickQuestionsHandler)
			r.Post("/mentor/ask", apiHandler.AskHandler)
			r.Get("/mentor/feedback", apiHandler.ListFeedbackHandler)
			r.Post("/mentor/feedback", apiHandler.CreateFeedbackHandler)
			r.Get("/mentor/state/{feature}", apiHandler.MentorStateHandler)

			// Chat routes
			r.Get("/chat", apiHandler.GetChatHandler)
			r.Post("/chat/messages", apiHandler.PostMessageHandler)
		})
	})

	return r
}
