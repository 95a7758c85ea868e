package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foodiez/directory/internal/api/http/handlers"
	"github.com/foodiez/directory/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Admins         *handlers.AdminsHandler
	Restaurants    *handlers.RestaurantsHandler
	Reviews        *handlers.ReviewsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.Restaurants.List)
	app.Get("/profile/:slug", cfg.Users.Profile)
	app.Get("/search", cfg.Restaurants.SearchQuery)
	app.Post("/search", cfg.Restaurants.SearchForm)

	app.Post("/register", cfg.Users.Register)
	app.Post("/login", cfg.Users.Login)
	app.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Users.Me)

	admin := app.Group("/admin")
	admin.Post("/register", cfg.Admins.Register)
	admin.Post("/login", cfg.Admins.Login)
	admin.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Admins.Me)

	restaurants := app.Group("/restaurants")
	restaurants.Get("/", cfg.Restaurants.List)
	restaurants.Get("/:identifier", cfg.Restaurants.Get)
	restaurants.Post("/", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Restaurants.Create)

	reviews := app.Group("/reviews")
	reviews.Get("/", cfg.Reviews.List)
	reviews.Post("/", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Reviews.Create)
}
