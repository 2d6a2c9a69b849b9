package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/quizgen-api/internal/api"
	apiMiddleware "github.com/phrazzld/quizgen-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for error correlation

	quizHandler := api.NewQuizHandler(app.quizService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/quiz/sessions", quizHandler.StartSession)
		r.Get("/quiz/sessions/{id}/question", quizHandler.GetCurrentQuestion)
		r.Post("/quiz/sessions/{id}/answer", quizHandler.SubmitAnswer)
		r.Get("/quiz/sessions/{id}/results", quizHandler.GetResults)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
