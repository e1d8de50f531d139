package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propinsight/server/config"
	"propinsight/server/internal/api"
	"propinsight/server/internal/insights"
	"propinsight/server/internal/llm"
	"propinsight/server/internal/sampledata"
	"propinsight/server/internal/session"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	dataset, err := sampledata.Load(cfg.SampleDataPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load sample data")
	}
	logger.WithFields(logrus.Fields{
		"properties":  len(dataset.Properties),
		"records":     len(dataset.FinancialRecords),
		"market":      len(dataset.MarketData),
		"competitors": len(dataset.Competitors),
	}).Info("Loaded sample data")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize language model client")
	}
	logger.Infof("Using model %s", client.Model())

	store := session.NewStore(dataset, logger)
	defer store.Close()

	janitor := session.NewJanitor(store, cfg.Session.SweepInterval, cfg.Session.IdleTimeout, logger)
	janitor.Start()
	defer janitor.Stop()

	if level != logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := api.NewHandler(store, insights.NewService(client, logger), logger)
	api.SetupRoutes(router, handler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
}
