package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyyur-service/internal/aggregator"
	"fyyur-service/internal/handler"
	mid "fyyur-service/internal/middleware"
	"fyyur-service/internal/store"
	"fyyur-service/pkg/config"
	"fyyur-service/pkg/database"
	"fyyur-service/pkg/logger"
	"fyyur-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting fyyur-service", appConfig.LogFields()...)

	// Initialize Prometheus metrics
	metrics := prometheus.InitMetrics(appConfig.Metrics.Prefix)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.Open(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close(db)
	log.Info("Database connection established", zap.String("driver", appConfig.DB.Driver))

	if err := database.Migrate(db, log); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	h := handler.New(store.New(db), aggregator.New(db), db, metrics)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware(log))
	e.Use(logger.Middleware(log))
	e.Use(metrics.Middleware())

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	h.Register(e)

	// Start server
	port := appConfig.Server.Port
	go func() {
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}
