package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freight-board/internal/api/http/handlers"
	"github.com/spec-kit/freight-board/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	CargoPosts     *handlers.CargoPostsHandler
	TruckPosts     *handlers.TruckPostsHandler
	Dashboard      *handlers.DashboardHandler
	Activities     *handlers.ActivitiesHandler
	Bids           *handlers.BidsHandler
	Chats          *handlers.ChatsHandler
	Companies      *handlers.CompaniesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Listing reads are public; everything
// that writes or exposes caller-scoped data sits behind the auth middleware.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/register", cfg.Users.Register)
	app.Post("/auth/session", cfg.Users.Login)

	app.Get("/cargo-posts", cfg.CargoPosts.List)
	app.Get("/cargo-posts/:id", cfg.CargoPosts.Get)
	app.Get("/truck-posts", cfg.TruckPosts.List)
	app.Get("/truck-posts/:id", cfg.TruckPosts.Get)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Delete("/auth/session", cfg.Users.Logout)
	protected.Get("/me", cfg.Users.Me)

	protected.Post("/cargo-posts", cfg.CargoPosts.Create)
	protected.Put("/cargo-posts/:id", cfg.CargoPosts.Update)
	protected.Delete("/cargo-posts/:id", cfg.CargoPosts.Delete)
	protected.Post("/cargo-posts/:id/bids", cfg.Bids.Place)
	protected.Get("/cargo-posts/:id/bids", cfg.Bids.ListForListing)

	protected.Post("/truck-posts", cfg.TruckPosts.Create)
	protected.Put("/truck-posts/:id", cfg.TruckPosts.Update)
	protected.Delete("/truck-posts/:id", cfg.TruckPosts.Delete)

	protected.Get("/bids", cfg.Bids.ListOwn)
	protected.Post("/bids/:id/accept", cfg.Bids.Accept)
	protected.Post("/bids/:id/reject", cfg.Bids.Reject)

	protected.Post("/chats", cfg.Chats.Open)
	protected.Get("/chats", cfg.Chats.List)
	protected.Get("/chats/:id", cfg.Chats.Get)
	protected.Post("/chats/:id/messages", cfg.Chats.Send)

	protected.Get("/dashboard", cfg.Dashboard.Summary)
	protected.Post("/user/activity", cfg.Activities.Record)
	protected.Get("/activities", cfg.Activities.Recent)

	protected.Get("/companies", cfg.Companies.List)
	protected.Post("/companies", cfg.Companies.Create)
}
