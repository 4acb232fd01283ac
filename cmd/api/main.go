package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventum/config"
	_ "eventum/docs"
	"eventum/internal/adapters/auth"
	"eventum/internal/adapters/email"
	httpdelivery "eventum/internal/delivery/http"
	"eventum/internal/delivery/http/controllers"
	"eventum/internal/delivery/http/middleware"
	"eventum/internal/dispatch"
	"eventum/internal/domain"
	"eventum/internal/repository/postgres"
	"eventum/internal/services"

	"golang.org/x/crypto/bcrypt"
)

const serviceTimeout = 5 * time.Second

// @title Eventum API
// @version 1.0
// @description Event management platform: events, registrations, check-in, and submission review.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	groupRepo := postgres.NewGroupRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	submissionRepo := postgres.NewSubmissionRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.SESRegion,
			AccessKeyID:        cfg.Mail.SESAccessKeyID,
			SecretAccessKey:    cfg.Mail.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureTLS,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	dispatcher := dispatch.New(mailer, logger, cfg.Dispatch.Workers, cfg.Dispatch.QueueSize, cfg.Dispatch.RetryBackoff)
	dispatcher.Start()

	renderer := email.NewTemplateRenderer()
	emailService := services.NewEmailService(renderer, dispatcher)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	clock := domain.SystemClock{}

	userService := services.NewUserService(userRepo, groupRepo, hasher, tokenIssuer, emailService, clock, logger, serviceTimeout)
	eventService := services.NewEventService(eventRepo, activityRepo, registrationRepo, userRepo, clock, serviceTimeout)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo, userRepo, emailService, clock, logger, serviceTimeout)
	checkInService := services.NewCheckInService(activityRepo, attendanceRepo, registrationRepo, eventRepo, userRepo, groupRepo, emailService, clock, logger, serviceTimeout)
	submissionService := services.NewSubmissionService(submissionRepo, eventRepo, userRepo, emailService, clock, logger, serviceTimeout)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:         controllers.NewAuthController(logger, userService),
		Event:        controllers.NewEventController(logger, eventService),
		Registration: controllers.NewRegistrationController(logger, registrationService),
		CheckIn:      controllers.NewCheckInController(logger, checkInService),
		Submission:   controllers.NewSubmissionController(logger, submissionService),
	}, tokenVerifier, logger)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}
	dispatcher.Stop()
	logger.Info("shutdown complete")
}
