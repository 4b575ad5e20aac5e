package router

import (
	"encoding/json"
	"net/http"

	"github.com/atelierhq/agency-api/internal/auth"
	"github.com/atelierhq/agency-api/internal/config"
	"github.com/atelierhq/agency-api/internal/database"
	"github.com/atelierhq/agency-api/internal/http/handler"
	"github.com/atelierhq/agency-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	authHandler      *handler.AuthHandler
	accountHandler   *handler.AccountHandler
	projectHandler   *handler.ProjectHandler
	proposalHandler  *handler.ProposalHandler
	invoiceHandler   *handler.InvoiceHandler
	expenseHandler   *handler.ExpenseHandler
	syncHandler      *handler.SyncHandler
	dashboardHandler *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	projectHandler *handler.ProjectHandler,
	proposalHandler *handler.ProposalHandler,
	invoiceHandler *handler.InvoiceHandler,
	expenseHandler *handler.ExpenseHandler,
	syncHandler *handler.SyncHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		authHandler:      authHandler,
		accountHandler:   accountHandler,
		projectHandler:   projectHandler,
		proposalHandler:  proposalHandler,
		invoiceHandler:   invoiceHandler,
		expenseHandler:   expenseHandler,
		syncHandler:      syncHandler,
		dashboardHandler: dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Accounts and their ledgers
			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", rt.accountHandler.List)
				r.With(rt.authMiddleware.RequireWrite).Post("/", rt.accountHandler.Create)
				r.Get("/{id}", rt.accountHandler.GetByID)
				r.With(rt.authMiddleware.RequireWrite).Put("/{id}", rt.accountHandler.Update)
				r.With(rt.authMiddleware.RequireWrite).Delete("/{id}", rt.accountHandler.Delete)
				r.Get("/{id}/transactions", rt.accountHandler.ListTransactions)
				r.With(rt.authMiddleware.RequireWrite).Post("/{id}/transactions", rt.accountHandler.AddTransaction)
			})

			// Projects and tasks
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.With(rt.authMiddleware.RequireWrite).Post("/", rt.projectHandler.Create)
				r.Get("/{id}", rt.projectHandler.GetByID)
				r.With(rt.authMiddleware.RequireWrite).Put("/{id}", rt.projectHandler.Update)
				r.With(rt.authMiddleware.RequireWrite).Delete("/{id}", rt.projectHandler.Delete)
				r.With(rt.authMiddleware.RequireWrite).Post("/{id}/tasks", rt.projectHandler.AddTask)
				r.With(rt.authMiddleware.RequireWrite).Put("/{id}/tasks/{taskId}", rt.projectHandler.UpdateTask)
				r.With(rt.authMiddleware.RequireWrite).Delete("/{id}/tasks/{taskId}", rt.projectHandler.DeleteTask)
			})

			// Proposals
			r.Route("/proposals", func(r chi.Router) {
				r.Get("/", rt.proposalHandler.List)
				r.With(rt.authMiddleware.RequireWrite).Post("/", rt.proposalHandler.Create)
				r.Get("/{id}", rt.proposalHandler.GetByID)
				r.With(rt.authMiddleware.RequireWrite).Put("/{id}", rt.proposalHandler.Update)
				r.With(rt.authMiddleware.RequireWrite).Delete("/{id}", rt.proposalHandler.Delete)
			})

			// Invoices
			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", rt.invoiceHandler.List)
				r.With(rt.authMiddleware.RequireWrite).Post("/", rt.invoiceHandler.Create)
				r.Get("/{id}", rt.invoiceHandler.GetByID)
				r.With(rt.authMiddleware.RequireWrite).Put("/{id}", rt.invoiceHandler.Update)
				r.With(rt.authMiddleware.RequireWrite).Delete("/{id}", rt.invoiceHandler.Delete)
			})

			// Expenses
			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", rt.expenseHandler.List)
				r.With(rt.authMiddleware.RequireWrite).Post("/", rt.expenseHandler.Create)
				r.Get("/{id}", rt.expenseHandler.GetByID)
				r.With(rt.authMiddleware.RequireWrite).Put("/{id}", rt.expenseHandler.Update)
				r.With(rt.authMiddleware.RequireWrite).Delete("/{id}", rt.expenseHandler.Delete)
			})

			// Sync
			r.With(rt.authMiddleware.RequireWrite).Post("/sync/projects", rt.syncHandler.SyncProjects)

			// Dashboard
			r.Get("/dashboard", rt.dashboardHandler.GetMetrics)
		})
	})

	return r
}
