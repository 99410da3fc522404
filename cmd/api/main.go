package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"eventplanner/config"
	_ "eventplanner/docs"
	authadapter "eventplanner/internal/adapters/auth"
	emailadapter "eventplanner/internal/adapters/email"
	delivery "eventplanner/internal/delivery/http"
	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/repository/postgres"
	"eventplanner/internal/services"
)

const (
	serviceTimeout = 10 * time.Second
	bcryptCost     = 10
)

// @title Event Planner API
// @version 1.0
// @description Event planning backend: users, events, invitations, and attendance tracking.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	txManager := postgres.NewTxManager(db)

	// Adapters
	hasher := authadapter.NewBcryptHasher(bcryptCost)
	tokenIssuer, tokenVerifier := authadapter.NewJWTProvider(cfg.JWTSecret)
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry)
	eventService := services.NewEventService(eventRepo, attendeeRepo, userRepo, txManager, emailService, logger, serviceTimeout)

	// Delivery
	eventController := controllers.NewEventController(logger, eventService)
	authController := controllers.NewAuthController(logger, authService)
	mux := delivery.NewRouter(eventController, authController, tokenVerifier)

	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
