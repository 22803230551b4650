package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/database"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/http/handler"
	"github.com/jwilson7981/job-tracker-sub000/internal/http/middleware"
	"github.com/jwilson7981/job-tracker-sub000/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/jwilson7981/job-tracker-sub000/docs" // swagger spec
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Jobs         *handler.JobHandler
	Suppliers    *handler.SupplierHandler
	Documents    *handler.DocumentHandler
	Bids         *handler.BidHandler
	ServiceCalls *handler.ServiceCallHandler
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	h              Handlers
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		h:              handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.cfg.Server.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	office := rt.authMiddleware.RequireRole(domain.OfficeRoles...)
	managers := rt.authMiddleware.RequireRole(domain.ManagerRoles...)
	owner := rt.authMiddleware.RequireRole(domain.OwnerOnly...)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(rt.rateLimiter.LimitLogin).Post("/auth/login", rt.h.Auth.Login)
		r.Post("/auth/logout", rt.h.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.LimitByUser)

			r.Get("/auth/me", rt.h.Auth.Me)

			r.Route("/users", func(r chi.Router) {
				r.Use(managers)
				r.Get("/", rt.h.Auth.ListUsers)
				r.Post("/", rt.h.Auth.CreateUser)
				r.Put("/{id}", rt.h.Auth.UpdateUser)
			})

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", rt.h.Jobs.List)
				r.With(office).Post("/", rt.h.Jobs.Create)
				r.Get("/{id}", rt.h.Jobs.Get)
				r.With(office).Put("/{id}", rt.h.Jobs.Update)
				r.With(owner).Delete("/{id}", rt.h.Jobs.Delete)

				r.With(office).Put("/{id}/line-items", rt.h.Jobs.ReplaceLineItems)
				r.With(office).Put("/{id}/entries/{kind}", rt.h.Jobs.SaveEntries)
				r.With(office).Post("/{id}/import-quote", rt.h.Jobs.ImportQuote)

				r.Get("/{id}/versions", rt.h.Jobs.ListVersions)
				r.Get("/{id}/versions/{vid}", rt.h.Jobs.GetVersion)
				r.With(office).Post("/{id}/versions/{vid}/revert", rt.h.Jobs.Revert)
			})

			r.With(managers).Get("/analytics", rt.h.Jobs.Analytics)
			r.Get("/tax-lookup/{zip}", rt.h.Jobs.TaxLookup)
			r.Post("/documents/check-duplicate", rt.h.Documents.CheckDuplicate)

			r.Route("/supplier-invoices", func(r chi.Router) {
				r.Use(office)
				r.Get("/", rt.h.Suppliers.ListInvoices)
				r.Post("/import", rt.h.Suppliers.Import)
				r.Put("/{id}/job", rt.h.Suppliers.LinkJob)
			})

			r.Route("/suppliers", func(r chi.Router) {
				r.Use(managers)
				r.Get("/", rt.h.Suppliers.ListConfigs)
				r.Post("/{id}/test", rt.h.Suppliers.TestConnection)
				r.Post("/{id}/sync", rt.h.Suppliers.Sync)
			})

			r.Route("/bids", func(r chi.Router) {
				r.Use(office)
				r.Get("/", rt.h.Bids.List)
				r.Post("/", rt.h.Bids.Create)
				r.Post("/calculate", rt.h.Bids.Calculate)
				r.Get("/{id}", rt.h.Bids.Get)
				r.Put("/{id}", rt.h.Bids.Update)
				r.Delete("/{id}", rt.h.Bids.Delete)
			})

			r.Route("/service-calls", func(r chi.Router) {
				r.Get("/", rt.h.ServiceCalls.List)
				r.Post("/", rt.h.ServiceCalls.Create)
				r.With(office).Put("/{id}/status", rt.h.ServiceCalls.UpdateStatus)
			})

			r.Route("/chat/sessions", func(r chi.Router) {
				r.Get("/", rt.h.Chat.ListSessions)
				r.Post("/", rt.h.Chat.CreateSession)
				r.Delete("/{id}", rt.h.Chat.DeleteSession)
				r.Get("/{id}/messages", rt.h.Chat.ListMessages)
				r.Post("/{id}/messages", rt.h.Chat.PostMessage)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", rt.h.Notification.List)
				r.Get("/unread-count", rt.h.Notification.GetUnreadCount)
				r.Put("/read-all", rt.h.Notification.MarkAllAsRead)
				r.Put("/{id}/read", rt.h.Notification.MarkAsRead)
			})
		})
	})

	return r
}

func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}

func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	overall := "healthy"
	dbCheck := map[string]interface{}{"status": "healthy"}
	if err := database.HealthCheck(rt.db); err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
		dbCheck = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
	}
	writeJSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": map[string]interface{}{"database": dbCheck},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
