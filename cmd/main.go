package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/sirupsen/logrus"
	"github.com/smartbash/brgy_dispatch/internal/config"
	v1 "github.com/smartbash/brgy_dispatch/internal/handler/http/v1"
	"github.com/smartbash/brgy_dispatch/internal/repository"
	"github.com/smartbash/brgy_dispatch/internal/service"
	"github.com/smartbash/brgy_dispatch/internal/sms"
	"github.com/smartbash/brgy_dispatch/internal/textnorm"
	"github.com/smartbash/brgy_dispatch/internal/webhook"
	"github.com/smartbash/brgy_dispatch/pkg/logger"
	"github.com/smartbash/brgy_dispatch/pkg/postgres"
	redisclient "github.com/smartbash/brgy_dispatch/pkg/redis"

	_ "github.com/smartbash/brgy_dispatch/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Barangay Dispatch API
// @version 1.0
// @description Incident dispatch and notification service for barangay officials and response services.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(cfg.MigrationsPath, migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func newMatcher(cfg *config.Config) (*textnorm.Matcher, error) {
	var (
		normalizer *textnorm.Normalizer
		err        error
	)
	if cfg.AliasFile != "" {
		normalizer, err = textnorm.LoadNormalizer(cfg.AliasFile)
	} else {
		normalizer, err = textnorm.NewDefaultNormalizer()
	}
	if err != nil {
		return nil, err
	}
	return textnorm.NewMatcher(normalizer, cfg.MatchFuzzyThreshold), nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	matcher, err := newMatcher(cfg)
	if err != nil {
		log.Fatalf("Failed to load barangay aliases: %v", err)
	}

	smsDispatcher := sms.NewDispatcherFromConfig(cfg.SMS, log)
	log.WithField("provider", smsDispatcher.Provider().Name()).Info("SMS provider selected")

	// Dispatch events only go to Redis when someone is listening
	var publisher webhook.EventPublisher = webhook.NopPublisher{}
	if cfg.WebhookURL != "" {
		publisher = webhook.NewRedisEventPublisher(redisClient)
		webhook.NewWorker(redisClient, log, cfg).Start(ctx)
	}

	reportRepo := repository.NewReportRepository(dbpool, redisClient, cfg.ReportCacheTTL)
	serviceRepo := repository.NewResponseServiceRepository(dbpool)
	notificationRepo := repository.NewNotificationRepository(dbpool)
	officialRepo := repository.NewOfficialRepository(dbpool)

	dispatchService := service.NewDispatchService(reportRepo, serviceRepo, notificationRepo, smsDispatcher, publisher, matcher, cfg, log)
	officialService := service.NewOfficialService(officialRepo, reportRepo, serviceRepo, matcher, log)
	responderService := service.NewResponderService(serviceRepo, notificationRepo, reportRepo, log)

	handler := v1.NewHandler(dispatchService, officialService, responderService, log, cfg)

	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           corsHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
