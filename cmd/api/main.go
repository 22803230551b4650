package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/docs"
	"github.com/jwilson7981/job-tracker-sub000/internal/assistant"
	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/chatbot"
	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/database"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/http/handler"
	"github.com/jwilson7981/job-tracker-sub000/internal/http/middleware"
	"github.com/jwilson7981/job-tracker-sub000/internal/http/router"
	"github.com/jwilson7981/job-tracker-sub000/internal/jobs"
	"github.com/jwilson7981/job-tracker-sub000/internal/llm"
	"github.com/jwilson7981/job-tracker-sub000/internal/logger"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"github.com/jwilson7981/job-tracker-sub000/internal/storage"
	"go.uber.org/zap"
)

// @title LGHVAC Job Tracker API
// @version 1.0
// @description Back office API for jobs, material ledgers, supplier invoices, bids and the assistant

// @contact.name LGHVAC Office

// @host localhost:5000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token from /auth/login
// @Security BearerAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if host := os.Getenv("PUBLIC_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Secrets come from the environment in development and from Key Vault
	// in staging/production when USE_AZURE_KEY_VAULT=true.
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Initialize(ctx, db, log); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	messenger := llm.New(cfg.LLM, log)
	log.Info("Language model", zap.Bool("enabled", messenger != nil), zap.String("model", cfg.LLM.Model))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	materialsRepo := repository.NewMaterialsRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	bidRepo := repository.NewBidRepository(db)
	callRepo := repository.NewServiceCallRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	expiryRepo := repository.NewExpiryRepository(db)

	// Services
	tokens := auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.SessionTTLDuration())
	userService := service.NewUserService(userRepo, tokens, log)
	ledgerService := service.NewLedgerService(materialsRepo, service.LedgerConfig{
		MaxVersions:        cfg.Ledger.MaxVersions,
		OutOfStateShipping: cfg.Ledger.OutOfStateShipping,
		HomeStates:         cfg.Ledger.HomeStates,
	}, log)
	jobService := service.NewJobService(jobRepo, ledgerService, taxTable(cfg.Tax), log)
	duplicateService := service.NewDuplicateService(documentRepo, messenger, log)
	importService := service.NewInvoiceImportService(supplierRepo, jobRepo, fileStorage, messenger, log)
	supplierService := service.NewSupplierService(supplierRepo, cfg.SupplierAPI, log)
	bidService := service.NewBidService(bidRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, log)
	callService := service.NewServiceCallService(callRepo, notificationService, log)
	chatService := service.NewChatService(
		chatRepo,
		assistant.New(messenger, reportRepo, log),
		chatbot.NewEngine(reportRepo, userRepo, log),
		log,
	)
	expiryService := service.NewExpiryService(reportRepo, expiryRepo, userRepo, notificationRepo, notificationService, log).
		WithWindow(cfg.Jobs.ExpiryWindowDays)

	authMiddleware := auth.NewMiddleware(&cfg.Auth, tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	maxUpload := cfg.Storage.MaxUploadSizeMB
	rt := router.NewRouter(cfg, log, db, authMiddleware, rateLimiter, router.Handlers{
		Auth:         handler.NewAuthHandler(userService, authMiddleware, log),
		Jobs:         handler.NewJobHandler(jobService, ledgerService, maxUpload, log),
		Suppliers:    handler.NewSupplierHandler(supplierService, importService, maxUpload, log),
		Documents:    handler.NewDocumentHandler(duplicateService, maxUpload, log),
		Bids:         handler.NewBidHandler(bidService, log),
		ServiceCalls: handler.NewServiceCallHandler(callService, log),
		Chat:         handler.NewChatHandler(chatService, log),
		Notification: handler.NewNotificationHandler(notificationService, log),
	})

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterExpiryScan(scheduler, expiryService, cfg.Jobs.ExpiryScanSchedule, true); err != nil {
			log.Error("Failed to register expiry scan", zap.Error(err))
		}
		if cfg.SupplierAPI.SyncEnabled {
			if err := jobs.RegisterSupplierSync(scheduler, supplierService, log, cfg.SupplierAPI.SyncSchedule); err != nil {
				log.Error("Failed to register supplier sync", zap.Error(err))
			}
		}
		scheduler.Start()
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		log.Info("Server stopped gracefully")
	}

	return nil
}

func taxTable(cfg config.TaxConfig) service.TaxTable {
	table := make(service.TaxTable, len(cfg.Rates))
	for zip, rate := range cfg.Rates {
		table[zip] = domain.TaxInfo{TaxRate: rate.TaxRate, City: rate.City, State: rate.State}
	}
	return table
}
