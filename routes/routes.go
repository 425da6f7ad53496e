package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"

	"github.com/shaONme/padel-admin/handlers"
	"github.com/shaONme/padel-admin/middleware"
)

// SetupRoutes настраивает все маршруты админки.
func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	statusHandler *handlers.StatusHandler,
	ratingHandler *handlers.RatingHandler,
	playerHandler *handlers.PlayerHandler,
	chatHandler *handlers.ChatHandler,
	draftHandler *handlers.DraftHandler,
	matchHandler *handlers.MatchHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)

	if len(allowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-Tg-Id", "X-Chat-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Use(middleware.Identity)

	router.Get("/health", statusHandler.HealthHandler)

	router.Route("/rating", func(r chi.Router) {
		r.Get("/", ratingHandler.ViewHandler)
		r.Get("/modes", ratingHandler.ListModesHandler)
		r.Get("/{mode}", ratingHandler.SelectModeHandler)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListHandler)
		r.Get("/search", playerHandler.SearchHandler)
		r.Get("/by_tg/{tgID}", playerHandler.GetByTgIDHandler)
	})

	// Маршруты, привязанные к оператору
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireIdentity)

		r.Get("/chats", chatHandler.ListHandler)

		r.Post("/players/register", playerHandler.RegisterHandler)

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", draftHandler.GetHandler)
			r.Patch("/", draftHandler.UpdateHandler)
			r.Get("/search", draftHandler.SearchHandler)
			r.Post("/participants", draftHandler.ToggleHandler)
			r.Put("/participants/order", draftHandler.ReorderHandler)
			r.Delete("/participants", draftHandler.ClearHandler)
			r.Post("/submit", draftHandler.SubmitHandler)
		})

		r.Post("/matches", matchHandler.CreateHandler)
	})
}
