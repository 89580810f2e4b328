package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ZitouneMcGregor/messagerie/internal/api/middleware"
	"github.com/ZitouneMcGregor/messagerie/internal/handlers"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, h *handlers.Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - the frontend runs on a separate origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)

	// Auth
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)

	// Chats
	r.Post("/chats", h.CreateChat)
	r.Get("/chats/{userId}", h.ListChats)

	// Messages
	r.Get("/messages", h.ListMessages)
	r.Post("/messages", h.SendMessage)
	r.Delete("/messages/{id}", h.DeleteMessage)

	// Users
	r.Get("/users/search", h.SearchUsers)
	r.Get("/users/{id}", h.GetUser)

	return r
}
