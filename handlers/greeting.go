package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// greetingTimeLayout prints local time with microseconds.
const greetingTimeLayout = "2006-01-02 15:04:05.000000"

// RegisterGreeting mounts GET / which answers with a welcome line and the
// server time. now defaults to time.Now.
func RegisterGreeting(r gin.IRoutes, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the datastore service! The current time is: %s", now().Format(greetingTimeLayout))
	})
}
