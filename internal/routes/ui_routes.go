package routes

import (
	"github.com/go-chi/chi/v5"

	"infinite-experiment/gamecache/internal/api"
	"infinite-experiment/gamecache/internal/middleware"
)

// RegisterUIRoutes registers the catalogue page and its assets
func RegisterUIRoutes(r chi.Router, handlers *api.Handlers, limiter *middleware.RateLimiter, deps *api.Dependencies) {
	r.Handle("/static/*", api.StaticHandler())

	r.Group(func(ui chi.Router) {
		ui.Use(middleware.InFlightMiddleware(deps.Metrics))

		ui.Get("/", handlers.IndexPageHandler())
		ui.With(limiter.Middleware).Post("/clear", handlers.ClearPageHandler())
	})
}
