package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	KB             *handlers.KBHandler
	Agent          *handlers.AgentHandler
	Config         *handlers.ConfigHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/register", cfg.Users.Register)
	app.Post("/auth/login", cfg.Users.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle)

	tickets := authed.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Get("/:id/audit", cfg.Tickets.GetAudit)
	tickets.Post("/:id/reply", auth.RequireStaff(), cfg.Tickets.Reply)
	tickets.Post("/:id/resolve", auth.RequireStaff(), cfg.Tickets.Resolve)
	tickets.Post("/:id/reopen", auth.RequireStaff(), cfg.Tickets.Reopen)

	kb := authed.Group("/kb")
	kb.Get("/", cfg.KB.ListArticles)
	kb.Get("/:id", cfg.KB.GetArticle)
	kb.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.KB.CreateArticle)
	kb.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.KB.UpdateArticle)
	kb.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.KB.DeleteArticle)

	authed.Get("/agent/suggestion/:ticketId", auth.RequireStaff(), cfg.Agent.GetSuggestion)

	authed.Get("/config", auth.RequireStaff(), cfg.Config.GetConfig)
	authed.Put("/config", auth.RequireRole(domain.RoleAdmin), cfg.Config.UpdateConfig)
}
