package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"daechul/internal/logger"
)

const requestIDKey = "requestID"

// RequestLogging tags every request with an id and logs one line per request.
// An X-Request-ID supplied by the caller is kept so ids can be traced across
// the demo frontend and this API; otherwise a fresh one is generated.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		log := logger.Get()
		if status >= 500 {
			log.Errorw("request", fields...)
		} else {
			log.Infow("request", fields...)
		}
	}
}
