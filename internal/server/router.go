package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gogotex/datastore/handlers"
	"github.com/gogotex/datastore/internal/config"
	"github.com/gogotex/datastore/internal/document/handler"
	"github.com/gogotex/datastore/internal/document/service"
	"github.com/gogotex/datastore/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options carries everything the router needs. Documents is required.
type Options struct {
	Config    *config.Config
	Documents service.Service
	// Redis is optional; it backs the fixed-window limiter when configured.
	Redis  *redis.Client
	Logger *zap.Logger
	// Gatherer serves /metrics; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer
	Now      func() time.Time
	Started  time.Time
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(opts Options) *gin.Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	started := opts.Started
	if started.IsZero() {
		started = time.Now()
	}

	r := gin.New()
	r.Use(ginzap.Ginzap(log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(log, true))
	r.Use(cors.New(corsConfig(cfg.CORS)))

	deps := map[string]handlers.Pinger{"store": opts.Documents}
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis && opts.Redis != nil {
		deps["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return opts.Redis.Ping(ctx).Err()
		})
	}

	// probes, scrapes and docs are never rate limited
	handlers.RegisterHealth(r, started, deps)
	handlers.RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/")
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && opts.Redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			api.Use(middleware.RedisRateLimitMiddleware(opts.Redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			api.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}
	handlers.RegisterGreeting(api, opts.Now)
	handler.RegisterDocumentRoutes(api, opts.Documents)

	return r
}

func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(c.AllowOrigins) == 0 || (len(c.AllowOrigins) == 1 && c.AllowOrigins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowOrigins
	}
	return cc
}
