package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	kafkaadapter "github.com/tremorlab/quake-map-service/internal/adapter/kafka"
	"github.com/tremorlab/quake-map-service/internal/adapter/raster"
	"github.com/tremorlab/quake-map-service/internal/adapter/usgs"
	"github.com/tremorlab/quake-map-service/internal/adapter/web"
	"github.com/tremorlab/quake-map-service/internal/config"
	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/observability"
	"github.com/tremorlab/quake-map-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	catalog := usgs.NewClient(cfg.USGSBaseURL, cfg.USGSTimeout, metrics, logger)
	rasters := raster.NewCachedSource(raster.NewFileSource(metrics, logger), cfg.RasterCacheSize, metrics)

	// Kafka sink is feature-flagged via KAFKA_ENABLED / KAFKA_SINK_TOPIC.
	var publisher pipeline.Publisher
	var sink *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		sink = kafkaadapter.NewPublisher(cfg, metrics, logger)
		publisher = sink
		metrics.PublisherEnabled.Set(1)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka sink disabled")
	}

	svc := pipeline.New(catalog, rasters, publisher, cfg.ExportDir, logger, metrics)

	defaults := web.Defaults{
		StartDate:    cfg.DefaultStartDate,
		EndDate:      cfg.DefaultEndDate,
		MinMagnitude: cfg.DefaultMinMagnitude,
		RasterPath:   cfg.DefaultRasterPath,
	}
	srv := web.NewServer(cfg.HTTPAddr, svc, svc, defaults, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	metrics.ServiceRunning.Set(1)

	// Prime the readiness probe with the default query. Failure is not
	// fatal; the service stays up and reports not ready until a catalog
	// fetch succeeds.
	go func() {
		q := domain.EventQuery{
			StartTime:    cfg.DefaultStartDate,
			EndTime:      cfg.DefaultEndDate,
			MinMagnitude: cfg.DefaultMinMagnitude,
		}
		if _, err := svc.FetchEvents(ctx, q); err != nil {
			logger.Warn("warmup fetch failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	metrics.ServiceRunning.Set(0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if sink != nil {
		if err := sink.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
