package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventninja/eventninja/config"
	repository "github.com/eventninja/eventninja/internal/database/postgres"
	rediscache "github.com/eventninja/eventninja/internal/database/redis"
	"github.com/eventninja/eventninja/internal/service"
	"github.com/eventninja/eventninja/internal/transport"
	"github.com/eventninja/eventninja/pkg/nonce"
	"github.com/eventninja/eventninja/pkg/postgres"
	"github.com/eventninja/eventninja/pkg/redis"
	"github.com/eventninja/eventninja/pkg/telegram"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewServer wires the application and runs it until SIGINT/SIGTERM.
// Startup creates the tables; shutdown drops nothing, all data stays
// in place.
func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	metaRepo := repository.NewEventMetaRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)

	// Optional availability cache
	var availabilityCache service.AvailabilityCache
	if cfg.Redis.Host != "" {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		availabilityCache = rediscache.NewAvailabilityCache(redisClient, cfg.Redis.CacheTTL)
		logrus.Info("Availability cache initialized")
	} else {
		logrus.Warn("Redis not configured, availability cache disabled")
	}

	// Optional Telegram notifications
	var telegramBot *telegram.Bot
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		telegramBot = telegram.NewBot(cfg.Telegram.BotToken)
		logrus.Info("Telegram bot initialized")
	} else {
		logrus.Warn("Telegram bot not configured, notifications disabled")
	}

	// Anti-forgery tokens
	nonces := nonce.NewService(cfg.Nonce.Secret, cfg.Nonce.Lifetime)

	// Initialize services
	eventService := service.NewEventService(eventRepo, metaRepo)
	registrationService := service.NewRegistrationService(
		registrationRepo, eventRepo, metaRepo, availabilityCache, telegramBot, cfg.Telegram.ChatID,
	)
	presenter := service.NewPresenter(eventService, registrationService, nonces)

	// Initialize handlers
	eventHandler := transport.NewEventHandler(eventService, presenter)
	registrationHandler := transport.NewRegistrationHandler(registrationService, nonces)
	adminHandler := transport.NewAdminHandler(eventService, registrationService, nonces)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		routes := transport.InitRoutes(
			cfg.App.TemplatesGlob, cfg.Admin.Token, cfg.Server.Timeout,
			eventHandler, registrationHandler, adminHandler,
		)
		if err := srv.Run(cfg, routes); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
