package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/mailbeacon/mailbeacon/config"
	"github.com/mailbeacon/mailbeacon/internal/database"
	"github.com/mailbeacon/mailbeacon/internal/domain"
	mailbeaconhttp "github.com/mailbeacon/mailbeacon/internal/http"
	"github.com/mailbeacon/mailbeacon/internal/repository"
	"github.com/mailbeacon/mailbeacon/internal/service"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// App assembles the repositories, services and HTTP handlers and owns the
// server lifecycle.
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	mux    *http.ServeMux
	server *http.Server

	// Repositories
	emailRepo      domain.OutboundEmailRepository
	eventRepo      domain.WebhookEventRepository
	tenantRepo     domain.TenantRepository
	inboundRepo    domain.InboundEmailRepository
	subscriberRepo domain.SubscriberRepository
	templateRepo   domain.TemplateRepository

	// Services
	verifier          domain.WebhookVerifier
	tracker           domain.DeliveryTracker
	mailer            domain.Mailer
	emailService      *service.EmailService
	inboundService    *service.InboundEmailService
	subscriberService *service.SubscriberService
	templateService   *service.TemplateService
}

// AppOption configures the App for tests
type AppOption func(*App)

// WithMockDB injects a database handle and skips the real connection
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMockMailer injects a mailer, bypassing the Mailgun API client
func WithMockMailer(m domain.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithLogger injects a custom logger
func WithLogger(l logger.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// NewApp creates a new App with the given configuration
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	a := &App{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = logger.NewLoggerWithLevel(cfg.LogLevel)
	}

	return a
}

// InitDB connects to the database and ensures the schema exists
func (a *App) InitDB() error {
	if a.db == nil {
		db, err := database.Connect(a.config.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
	}

	if err := database.InitializeDatabase(a.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return nil
}

// InitRepositories creates the repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database not initialized")
	}

	a.emailRepo = repository.NewOutboundEmailRepository(a.db)
	a.eventRepo = repository.NewWebhookEventRepository(a.db)
	a.tenantRepo = repository.NewTenantRepository(a.db)
	a.inboundRepo = repository.NewInboundEmailRepository(a.db)
	a.subscriberRepo = repository.NewSubscriberRepository(a.db)
	a.templateRepo = repository.NewTemplateRepository(a.db)

	return nil
}

// InitServices creates the services
func (a *App) InitServices() error {
	a.verifier = service.NewWebhookAuthService(
		a.tenantRepo,
		a.config.Mailgun.WebhookSigningKey,
		a.config.Mailgun.SignatureTolerance,
		a.logger,
	)

	a.tracker = service.NewDeliveryTrackerService(a.emailRepo, a.eventRepo, a.logger)

	if a.mailer == nil {
		a.mailer = service.NewMailgunService(
			&http.Client{Timeout: 30 * time.Second},
			a.config.Mailgun,
			a.logger,
		)
	}

	a.emailService = service.NewEmailService(
		a.templateRepo,
		a.tenantRepo,
		a.tracker,
		a.mailer,
		a.config.Mailgun.Domain,
		a.logger,
	)

	a.inboundService = service.NewInboundEmailService(a.inboundRepo, a.logger)
	a.subscriberService = service.NewSubscriberService(a.subscriberRepo, a.logger)
	a.templateService = service.NewTemplateService(a.templateRepo, a.logger)

	return nil
}

// InitHandlers registers the HTTP routes
func (a *App) InitHandlers() error {
	webhookHandler := mailbeaconhttp.NewWebhookHandler(a.verifier, a.tracker, a.inboundService, a.logger)
	emailHandler := mailbeaconhttp.NewEmailHandler(a.emailService, a.emailRepo, a.logger)
	eventLogHandler := mailbeaconhttp.NewEventLogHandler(a.eventRepo, a.logger)
	statsHandler := mailbeaconhttp.NewStatsHandler(a.tracker, a.logger)

	webhookHandler.RegisterRoutes(a.mux)
	emailHandler.RegisterRoutes(a.mux)
	eventLogHandler.RegisterRoutes(a.mux)
	statsHandler.RegisterRoutes(a.mux)

	a.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, a.config.Version)
	})

	return nil
}

// Initialize runs all initialization phases in order
func (a *App) Initialize() error {
	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	if err := a.InitServices(); err != nil {
		return err
	}
	if err := a.InitHandlers(); err != nil {
		return err
	}
	return nil
}

// Start runs the HTTP server and blocks until it stops
func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)

	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	a.logger.WithField("addr", addr).
		WithField("environment", a.config.Environment).
		Info("Starting server")

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server and closes the database
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down server")

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.Error(fmt.Sprintf("Server shutdown error: %v", err))
			return err
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error(fmt.Sprintf("Database close error: %v", err))
			return err
		}
	}

	return nil
}

// GetMux exposes the route multiplexer, mainly for tests
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetLogger exposes the logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetConfig exposes the configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}
