package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nexfest/festhub/internal/config"
	"github.com/nexfest/festhub/internal/db"
	"github.com/nexfest/festhub/internal/notifications"
	"github.com/nexfest/festhub/internal/observability"
	"github.com/nexfest/festhub/internal/queue/redisclient"
	"github.com/nexfest/festhub/internal/queue/worker"
	"github.com/nexfest/festhub/internal/repo/postgres"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(registry)

	jobsRepo := postgres.NewJobsRepo(pool, prom)

	redisCli := redisclient.New(redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	var nudger worker.Nudger

	pingCtx, cancelPing := config.WithTimeout(2 * time.Second)
	err = redisCli.Ping(pingCtx)
	cancelPing()

	if err != nil {
		log.Warn("redis unreachable, polling only", "err", err)
		_ = redisCli.Close()
	} else {
		nudger = redisCli
		defer redisCli.Close()
	}

	notifier := notifications.NewProtectedNotifier(
		notifications.NewLogNotifier(log),
		notifications.ProtectedNotifierConfig{},
	)

	host, _ := os.Hostname()
	workerID := host + "-" + strconv.Itoa(os.Getpid())

	metrics := observability.NewJobMetrics()

	w := worker.New(worker.Config{
		WorkerID:     workerID,
		PollInterval: 2 * time.Second,
		StaleAfter:   5 * time.Minute,
	}, jobsRepo, &worker.Handlers{Notifier: notifier}, nudger, log, metrics, prom)

	// health probes on a side port
	healthSrv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port+1),
		Handler:           w.HealthHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("worker health server failed", "err", err)
		}
	}()

	log.Info("worker started", "worker_id", workerID)

	if err := w.Run(ctx); err != nil {
		log.Error("worker stopped with error", "err", err)
	}

	sctx, cancel := config.WithTimeout(5 * time.Second)
	_ = healthSrv.Shutdown(sctx)
	cancel()

	log.Info("worker shutdown complete")
}
