package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enterprisellm/orchestrator/internal/agent"
	"github.com/enterprisellm/orchestrator/internal/config"
	"github.com/enterprisellm/orchestrator/internal/handler"
	"github.com/enterprisellm/orchestrator/internal/mcp"
	"github.com/enterprisellm/orchestrator/internal/middleware"
	"github.com/enterprisellm/orchestrator/internal/store"
)

// Version is stamped into /health responses.
const Version = "1.0.0"

// NewRouter wires the middleware chain and all endpoints. /health stays
// outside auth and rate limiting so probes keep working.
func NewRouter(cfg *config.Config, st store.Store, a *agent.Agent, reg *mcp.Registry, mcpServer *mcp.Server) http.Handler {
	chat := handler.NewChatHandler(a)
	tools := handler.NewToolsHandler(reg)
	rpc := handler.NewMCPHandler(mcpServer)
	entities := handler.NewEntitiesHandler(st)
	data := handler.NewDataHandler(st)
	health := handler.NewHealthHandler(st, Version)

	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", health.Handle)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitPerMinute).Middleware)
		r.Use(middleware.APIKeyAuth(cfg.APIKeyHeader, cfg.APIKeys, cfg.EnableAuth))

		r.Post("/chat", chat.Handle)
		r.Get("/tools", tools.List)
		r.Post("/mcp", rpc.Handle)

		r.Route("/entities", func(r chi.Router) {
			r.Get("/hr/employees", entities.Employees)
			r.Get("/crm/customers", entities.Customers)
			r.Get("/banking/accounts", entities.Accounts)
			r.Get("/all", entities.All)
		})

		r.Route("/data", func(r chi.Router) {
			r.Get("/stats", data.Stats)
			r.Get("/tool-stats", data.ToolStats)
			r.Get("/recent-conversations", data.RecentConversations)
			r.Get("/threads/{thread_id}", data.Thread)
		})
	})

	return r
}
