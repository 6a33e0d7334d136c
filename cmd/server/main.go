// @title ConvoManage API
// @version 1.0
// @description Conference management API: auth, conferences, sessions, registrations, notifications.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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
	"golang.org/x/crypto/bcrypt"

	"convomanage/config"
	_ "convomanage/docs"
	"convomanage/internal/adapters/auth"
	"convomanage/internal/adapters/email"
	httpdelivery "convomanage/internal/delivery/http"
	"convomanage/internal/delivery/http/controllers"
	"convomanage/internal/delivery/http/middleware"
	"convomanage/internal/domain"
	"convomanage/internal/live"
	"convomanage/internal/repository/postgres"
	"convomanage/internal/repository/redisstore"
	"convomanage/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}

	var tokenRevoker domain.TokenRevoker
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		tokenRevoker, err = redisstore.NewTokenStore(ctx, cfg.RedisAddr, cfg.RedisPassword)
		cancel()
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		logger.Info("token revocation enabled", "addr", cfg.RedisAddr)
	}

	userRepo := postgres.NewUserRepository(db)
	conferenceRepo := postgres.NewConferenceRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mailer := email.NewMailer(cfg.Email, logger)

	notifier := services.NewNotifier(notificationRepo, mailer, logger)
	userService := services.NewUserService(userRepo, speakerRepo, hasher, tokenIssuer, tokenRevoker, cfg.JWTExpiry)
	conferenceService := services.NewConferenceService(conferenceRepo, registrationRepo, userRepo, logger)
	registrationService := services.NewRegistrationService(registrationRepo, conferenceRepo, userRepo, notifier, logger)
	sessionService := services.NewSessionService(sessionRepo, conferenceRepo)

	hub := live.NewHub(logger)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:          controllers.NewAuthController(logger, userService),
		Conference:    controllers.NewConferenceController(logger, conferenceService),
		Registration:  controllers.NewRegistrationController(logger, registrationService),
		Session:       controllers.NewSessionController(logger, sessionService),
		Notification:  controllers.NewNotificationController(logger, notifier),
		Live:          live.NewHandler(hub, conferenceService, logger),
		TokenVerifier: tokenVerifier,
		TokenRevoker:  tokenRevoker,
	}, logger)

	handler := middleware.Logging(logger,
		middleware.Metrics(
			middleware.CORS(cfg.CORSAllowedOrigins, mux)))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
