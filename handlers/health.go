package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// RegisterHealth mounts GET /health (liveness) and GET /ready. Readiness is
// 200 only when every dependency in deps answers its ping within two seconds.
func RegisterHealth(r gin.IRoutes, started time.Time, deps map[string]Pinger) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ready := true
		status := map[string]bool{}
		for name, p := range deps {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err := p.Ping(ctx)
			cancel()
			status[name] = err == nil
			if err != nil {
				_ = c.Error(err)
				ready = false
			}
		}

		uptime := time.Since(started).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": status, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": status, "uptime": uptime})
	})
}
