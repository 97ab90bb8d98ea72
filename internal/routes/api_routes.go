package routes

import (
	"github.com/go-chi/chi/v5"

	"infinite-experiment/gamecache/internal/api"
	"infinite-experiment/gamecache/internal/middleware"
)

// RegisterAPIRoutes registers the JSON API
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, limiter *middleware.RateLimiter, deps *api.Dependencies) {
	r.Route("/api", func(apiR chi.Router) {
		apiR.Use(middleware.InFlightMiddleware(deps.Metrics))

		apiR.Get("/games", handlers.GamesHandler())

		apiR.Group(func(writes chi.Router) {
			writes.Use(limiter.Middleware)

			writes.Delete("/games/cache", handlers.ClearGamesCacheHandler())
			writes.Post("/games/cache/clear", handlers.ClearGamesCacheHandler())

			writes.Post("/cache/{key}", handlers.SetCacheEntryHandler())
			writes.Put("/cache/{key}", handlers.UpdateCacheEntryHandler())
			writes.Delete("/cache/{key}", handlers.DeleteCacheEntryHandler())
		})

		apiR.Get("/cache/{key}", handlers.GetCacheEntryHandler())
	})
}
