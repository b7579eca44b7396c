package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gatekeep-dev/gatekeep/internal/metrics"
	"github.com/gatekeep-dev/gatekeep/internal/types"
)

type LoggingMiddleware struct {
	logger *zap.Logger
}

func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

func (lm *LoggingMiddleware) LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		metrics.Default.IncrementRequest(route, c.Writer.Status())
		metrics.Default.ObserveLatency(route, duration)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
		}

		if value, exists := c.Get(types.ContextUserKey); exists {
			if user, ok := value.(AuthenticatedUser); ok {
				fields = append(fields, zap.Uint("user_id", user.ID))
			}
		}

		lm.logger.Info("HTTP Request", fields...)
	}
}
