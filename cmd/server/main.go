// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages. Every client handle
// (Postgres, Redis, Kafka) is constructed here, shared by reference, and
// closed on shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"pepgate/internal/device"
	"pepgate/internal/eventlog"
	jwttoken "pepgate/internal/jwt_token"
	"pepgate/internal/onboarding"
	pephandler "pepgate/internal/pep/handler"
	pepservice "pepgate/internal/pep/service"
	userstore "pepgate/internal/pep/store/user"
	"pepgate/internal/platform/config"
	"pepgate/internal/platform/httpserver"
	"pepgate/internal/platform/logger"
	"pepgate/internal/platform/metrics"
	"pepgate/internal/platform/postgres"
	platformredis "pepgate/internal/platform/redis"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher, err := eventlog.NewKafkaPublisher(cfg.Kafka, log)
	if err != nil {
		log.Error("event log unavailable", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	m := metrics.New()

	var store userstore.Store = userstore.NewPostgres(db)
	if redisClient != nil {
		store = userstore.NewSuitabilityCache(store, redisClient.Client, cfg.Redis.SuitabilityTTL, log)
	}

	upstreamClient := &http.Client{Timeout: cfg.Upstream.RequestTimeout}
	steps := onboarding.NewHTTPStepClient(cfg.Upstream.StepServiceURL, upstreamClient, log)
	devices := device.NewHTTPResolver(cfg.Upstream.DeviceServiceURL, upstreamClient, log)
	jwtService := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	svc := pepservice.New(steps, publisher, store, pepservice.Flags{
		RequireSuitability: cfg.Pipeline.RequireSuitability,
		ExpectedStep:       cfg.Pipeline.ExpectedStep,
	}, log, m)

	h := pephandler.New(jwtService, devices, svc, cfg.Pipeline.RequireDeviceInfo, log)

	router := chi.NewRouter()
	h.Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting pepgate", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
