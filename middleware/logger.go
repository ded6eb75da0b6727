package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"song-order-service/pkg/ctxmanage"
	"song-order-service/pkg/logkey"
)

// Logger emits one structured log line per request, tagged with the trace id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		traceId := ctxmanage.GetTraceIdOfRequest(c)

		c.Next()

		slog.Info("request completed",
			slog.String(logkey.TraceID, traceId),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
