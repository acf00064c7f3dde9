package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/synthetica-health/platform/pkg/api/auth"
	"github.com/synthetica-health/platform/pkg/api/middleware"
	"github.com/synthetica-health/platform/pkg/common/config"
	"github.com/synthetica-health/platform/pkg/common/database"
	"github.com/synthetica-health/platform/pkg/common/kafka"
	"github.com/synthetica-health/platform/pkg/common/logger"
	"github.com/synthetica-health/platform/pkg/dataset"
	"github.com/synthetica-health/platform/pkg/observability/metrics"
	"github.com/synthetica-health/platform/pkg/profile"
)

func main() {
	logger.Init()
	metrics.Init()
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	repo := dataset.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate dataset tables")
	}

	profiles, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		logger.Log.WithError(err).Warn("falling back to built-in cohort profiles")
	}

	producer := kafka.NewProducer(cfg.DatasetTopic)
	defer producer.Close()

	var dlqProducer *kafka.Producer
	if cfg.DatasetDLQTopic != "" {
		dlqProducer = kafka.NewProducer(cfg.DatasetDLQTopic)
		defer dlqProducer.Close()
	}

	cache := dataset.NewSummaryCache(database.GetRedis(), cfg.SummaryCacheTTL)

	svc := dataset.NewService(repo, producer, dlqProducer, cache, profiles, cfg.OutputDir)
	handler := dataset.NewHTTPHandler(svc, cfg.MaxRequestBody)

	var oidcAuth *auth.OIDCAuthenticator
	if cfg.OIDCIssuer != "" {
		oidcAuth, err = auth.NewOIDCAuthenticator(cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret)
		if err != nil {
			logger.Log.WithError(err).Fatal("invalid OIDC configuration")
		}
	}

	router := mux.NewRouter()
	router.Use(middleware.Recovery, middleware.Logging, middleware.CORS)
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate(oidcAuth))
	handler.Register(api)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Generator Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := svc.Cleanup(context.Background(), cfg.DatasetTTL); err != nil {
					logger.Log.WithError(err).Warn("dataset cleanup job failed")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Generator Service...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	database.ClosePostgres()
	database.CloseRedis()

	logger.Log.Info("Generator Service stopped")
}
