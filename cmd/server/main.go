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

	"github.com/jengzang/route-history-backend/internal/analysis"
	"github.com/jengzang/route-history-backend/internal/api"
	"github.com/jengzang/route-history-backend/internal/config"
	"github.com/jengzang/route-history-backend/internal/database"
	"github.com/jengzang/route-history-backend/internal/handler"
	"github.com/jengzang/route-history-backend/internal/logger"
	"github.com/jengzang/route-history-backend/internal/metrics"
	"github.com/jengzang/route-history-backend/internal/middleware"
	"github.com/jengzang/route-history-backend/internal/publisher"
	"github.com/jengzang/route-history-backend/internal/repository"
	"github.com/jengzang/route-history-backend/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Config{Level: "info"})
		logger.Fatal("Invalid configuration", "error", err)
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, FilePath: cfg.LogFile})
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer database.Close()
	db := database.GetDB()

	collector := metrics.NewCollector()

	opts := service.AnalysisOptions{
		Defaults: analysis.Params{
			StopSpeedThresholdKmh: cfg.StopSpeedThresholdKmh,
			MinStopDurationSec:    cfg.MinStopDurationSec,
			DeviationToleranceKm:  cfg.DeviationToleranceKm,
			CorridorMode:          cfg.CorridorMode,
		},
		ParallelThreshold: cfg.ParallelThreshold,
		Metrics:           collector,
	}

	if cfg.NATSURL != "" {
		pub, err := publisher.NewNATSPublisher(cfg.NATSURL, cfg.LogLevel == "debug", collector)
		if err != nil {
			logger.Warn("NATS unavailable, analysis events disabled", "url", cfg.NATSURL, "error", err)
		} else {
			defer pub.Close()
			opts.Publisher = pub
		}
	}

	tripRepo := repository.NewTripRepository(db)
	trackRepo := repository.NewTrackRepository(db)

	handlers := api.Handlers{
		Trips:    handler.NewTripHandler(service.NewTripService(tripRepo, trackRepo, collector)),
		Analysis: handler.NewAnalysisHandler(service.NewRouteAnalysisService(tripRepo, trackRepo, opts)),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	// 初始化路由
	router := api.SetupRouter(cfg, handlers, collector, limiter)
	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", cfg.Port, "analyzers", analysis.Names())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
