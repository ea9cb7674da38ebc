package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/flypad/internal/adapter/aviationweather"
	httpadapter "github.com/couchcryptid/flypad/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/flypad/internal/adapter/kafka"
	"github.com/couchcryptid/flypad/internal/adapter/simbrief"
	"github.com/couchcryptid/flypad/internal/adapter/userstore"
	"github.com/couchcryptid/flypad/internal/config"
	"github.com/couchcryptid/flypad/internal/console"
	"github.com/couchcryptid/flypad/internal/fetch"
	"github.com/couchcryptid/flypad/internal/observability"
	"github.com/couchcryptid/flypad/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loop := state.NewLoop(cfg.EventQueueSize, logger, metrics)

	opts := []fetch.Option{fetch.WithTAF(cfg.IncludeTAF)}

	// Record publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, metrics, logger)
		opts = append(opts, fetch.WithPublisher(publisher))
		logger.Info("record publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("record publishing disabled")
	}

	orch := fetch.New(
		aviationweather.NewClient(cfg.WeatherBaseURL, cfg.FetchTimeout, metrics, logger),
		simbrief.NewClient(cfg.FlightPlanBaseURL, cfg.FetchTimeout, metrics, logger),
		userstore.New(cfg.UserFile),
		loop,
		metrics,
		logger,
		opts...,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, loop, loop, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(ctx, orch); err != nil {
			logger.Error("event loop error", "error", err)
		}
	}()

	// Restore the user id saved by a previous session.
	if err := loop.Send(ctx, state.LoadUserID{}); err != nil {
		logger.Error("failed to queue startup event", "error", err)
	}

	go func() {
		if err := console.Run(ctx, os.Stdin, os.Stdout, loop); err != nil {
			logger.Error("console error", "error", err)
		}
		stop()
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	<-loopDone
	orch.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
