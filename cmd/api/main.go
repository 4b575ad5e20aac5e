package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atelierhq/agency-api/internal/auth"
	"github.com/atelierhq/agency-api/internal/config"
	"github.com/atelierhq/agency-api/internal/database"
	"github.com/atelierhq/agency-api/internal/http/handler"
	"github.com/atelierhq/agency-api/internal/http/middleware"
	"github.com/atelierhq/agency-api/internal/http/router"
	"github.com/atelierhq/agency-api/internal/jobs"
	"github.com/atelierhq/agency-api/internal/logger"
	"github.com/atelierhq/agency-api/internal/repository"
	"github.com/atelierhq/agency-api/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// Initialize auth
	tokenIssuer := auth.NewTokenIssuer(&cfg.Auth)
	authMiddleware := auth.NewMiddleware(cfg, log)

	// Initialize services
	authService := service.NewAuthService(&cfg.Auth, tokenIssuer, log)
	accountService := service.NewAccountService(accountRepo, transactionRepo, projectRepo, log)
	projectService := service.NewProjectService(projectRepo, accountRepo, log)
	proposalService := service.NewProposalService(proposalRepo, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, log)
	expenseService := service.NewExpenseService(expenseRepo, log)
	syncService := service.NewSyncService(projectRepo, log)
	dashboardService := service.NewDashboardService(accountRepo, projectRepo, proposalRepo, invoiceRepo, expenseRepo, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, log)
	accountHandler := handler.NewAccountHandler(accountService, log)
	projectHandler := handler.NewProjectHandler(projectService, log)
	proposalHandler := handler.NewProposalHandler(proposalService, log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, log)
	expenseHandler := handler.NewExpenseHandler(expenseService, log)
	syncHandler := handler.NewSyncHandler(syncService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Rate limiting
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		accountHandler,
		projectHandler,
		proposalHandler,
		invoiceHandler,
		expenseHandler,
		syncHandler,
		dashboardHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		retentionJob := jobs.NewRetentionJob(accountRepo, cfg.Jobs.RetentionDays, log)
		if err := scheduler.AddJob(jobs.RetentionJobName, cfg.Jobs.RetentionCron, retentionJob.Run); err != nil {
			log.Error("Failed to register retention job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with retention job",
				zap.String("cron_expr", cfg.Jobs.RetentionCron),
				zap.Int("retention_days", cfg.Jobs.RetentionDays),
			)
		}
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
