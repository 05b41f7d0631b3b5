package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nugammasigma/chapter/internal/members/billing"
	httpapi "github.com/nugammasigma/chapter/internal/members/http"
	"github.com/nugammasigma/chapter/internal/members/notify"
	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/internal/members/store"
	"github.com/nugammasigma/chapter/internal/members/store/drivers/sqlite"
	"github.com/nugammasigma/chapter/pkg/cryptox"
	"github.com/nugammasigma/chapter/pkg/jwtx"
	"github.com/nugammasigma/chapter/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the member service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	keys   *jwtx.KeySet
	signer *jwtx.Signer

	// Outbound integrations, nil/unconfigured clients disable the feature
	mailer  *notify.Client
	billing *billing.Client

	// Services
	authService         *service.AuthService
	invitationService   *service.InvitationService
	rosterService       *service.RosterService
	complianceService   *service.ComplianceService
	duesService         *service.DuesService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "member-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initKeys(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initIntegrations()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("member service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down member service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("member service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initKeys generates the ephemeral token signing key. Tokens do not survive a
// restart; members just log in again.
func (app *Application) initKeys() error {
	signer, err := jwtx.GenerateSigner(fmt.Sprintf("members-%d", time.Now().Unix()))
	if err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}

	app.signer = signer
	app.keys = jwtx.NewKeySet()
	app.keys.AddSigner(signer)
	return nil
}

// initIntegrations wires the optional Postmark and Stripe clients.
func (app *Application) initIntegrations() {
	app.mailer = notify.NewClient(app.cfg.PostmarkServerToken, app.cfg.FromEmail, app.cfg.SiteURL)
	if app.mailer.Configured() {
		app.logger.Info("postmark delivery enabled", "from", app.cfg.FromEmail)
	} else {
		app.logger.Warn("postmark not configured, invitation and removal emails disabled")
	}

	app.billing = billing.NewClient(billing.Config{
		SecretKey:     app.cfg.StripeSecretKey,
		WebhookSecret: app.cfg.StripeWebhookSecret,
		DuesPriceID:   app.cfg.StripeDuesPriceID,
		DuesAmount:    app.cfg.StripeDuesAmount,
		SuccessURL:    app.cfg.SiteURL + "/dues/success",
		CancelURL:     app.cfg.SiteURL + "/dues",
	})
	if app.billing.Configured() {
		app.logger.Info("stripe checkout enabled")
	} else {
		app.logger.Warn("stripe not configured, hosted dues checkout disabled")
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		Signer: app.signer,
		Issuer: app.cfg.Issuer,
	}

	app.invitationService = &service.InvitationService{Store: app.db}
	if app.mailer.Configured() {
		app.invitationService.Mailer = app.mailer
	}

	app.complianceService = &service.ComplianceService{Store: app.db}
	if app.mailer.Configured() {
		app.complianceService.Mailer = app.mailer
	}

	app.rosterService = &service.RosterService{Store: app.db, Invitations: app.invitationService}
	if app.mailer.Configured() {
		app.rosterService.Mailer = app.mailer
	}

	app.duesService = &service.DuesService{Store: app.db}
	if app.billing.Configured() {
		app.duesService.Checkout = app.billing
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.invitationService,
		app.complianceService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		jwtx.NewVerifier(app.keys, app.cfg.Issuer),
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.InvitationService = app.invitationService
	router.RosterService = app.rosterService
	router.ComplianceService = app.complianceService
	router.DuesService = app.duesService
	router.Billing = app.billing
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
