package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/seedling-labs/gratitude-api/internal/api"
	apiMiddleware "github.com/seedling-labs/gratitude-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	memoryHandler := api.NewMemoryHandler(app.memoryService, app.llmClient)
	gratitudeHandler := api.NewGratitudeHandler(app.surfacingService)
	voiceHandler := api.NewVoiceHandler(app.voiceService)
	speechHandler := api.NewSpeechHandler(app.speechService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Memory endpoints
			r.Post("/memories", memoryHandler.Create)
			r.Post("/memories/upload", memoryHandler.Upload)
			r.Post("/memories/transcribe", memoryHandler.Transcribe)
			r.Get("/memories", memoryHandler.List)
			r.Get("/memories/senders", memoryHandler.ListSenders)
			r.Get("/memories/{id}", memoryHandler.Get)

			// Daily gratitude endpoints
			r.Get("/gratitude/today", gratitudeHandler.Today)
			r.Post("/gratitude/today/viewed", gratitudeHandler.MarkViewed)
			r.Post("/gratitude/reflections", gratitudeHandler.CreateReflection)
			r.Get("/gratitude/reflections", gratitudeHandler.ListReflections)

			// Sender voice endpoints
			r.Put("/voices", voiceHandler.Upsert)
			r.Get("/voices", voiceHandler.List)
			r.Delete("/voices/{sender}", voiceHandler.Delete)
			r.Post("/voices/{sender}/default", voiceHandler.SetDefault)

			// Speech endpoints
			r.Post("/speech", speechHandler.Synthesize)
			r.Get("/speech/voices", speechHandler.ListVoices)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
