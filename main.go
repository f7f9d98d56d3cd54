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
	"github.com/gogotex/datastore/internal/config"
	"github.com/gogotex/datastore/internal/document/service"
	"github.com/gogotex/datastore/internal/server"
	"github.com/gogotex/datastore/pkg/logger"
	"github.com/gogotex/datastore/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: store=%s redis=%v rate_limit=%v", cfg.Store.Backend, cfg.Redis.Addr() != "", cfg.RateLimit.Enabled)

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is only needed by the distributed rate limiter
	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			logger.Infof("connected to Redis: %s", addr)
			defer func() { _ = rdb.Close() }()
		}
	}

	docs, closeStore, err := service.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open document store: %v", err)
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeStore(cctx); err != nil {
			logger.Warnf("closing document store: %v", err)
		}
	}()

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := server.NewRouter(server.Options{
		Config:    cfg,
		Documents: docs,
		Redis:     rdb,
		Logger:    logger.L(),
		Started:   startTime,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("starting datastore service on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Infof("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Errorf("graceful shutdown failed: %v", err)
		}
	}
}
