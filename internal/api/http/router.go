package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/http/handlers"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Properties     *handlers.PropertiesHandler
	AuthMiddleware fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	admin := auth.RequireRole(domain.UserRoleAdmin)
	lister := auth.RequireRole(domain.UserRoleBroker, domain.UserRoleAdmin)

	users := app.Group("/users", cfg.AuthMiddleware, auth.RequireAuthenticated())
	users.Get("/me", cfg.Users.Me)
	users.Put("/me", cfg.Users.UpdateMe)
	users.Get("", admin, cfg.Users.List)
	users.Post("", admin, cfg.Users.Create)
	users.Get("/:id", admin, cfg.Users.Get)
	users.Put("/:id", admin, cfg.Users.Update)

	favorites := app.Group("/favorites", cfg.AuthMiddleware, auth.RequireAuthenticated())
	favorites.Get("", cfg.Users.Favorites)
	favorites.Post("/:propertyId", cfg.Users.AddFavorite)
	favorites.Delete("/:propertyId", cfg.Users.RemoveFavorite)

	properties := app.Group("/properties", cfg.AuthMiddleware, auth.RequireAuthenticated())
	properties.Get("", cfg.Properties.List)
	properties.Get("/mine", lister, cfg.Properties.Mine)
	properties.Get("/:id", cfg.Properties.Get)
	properties.Post("", lister, cfg.Properties.Create)
	properties.Put("/:id", lister, cfg.Properties.Update)
	properties.Delete("/:id", lister, cfg.Properties.Delete)
	properties.Patch("/:id/status", lister, cfg.Properties.ToggleStatus)
}
