package testutils

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// requestIDMiddleware mirrors the production gateway: it echoes the caller's
// X-Request-ID (minting one when absent) and logs each request with it, so
// test failures can be matched to the client's request log lines.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		requestLogger := log.With().Str("request_id", requestID).Logger()

		start := time.Now()
		c.Next()

		requestLogger.Debug().
			Str("method", c.Request.Method).
			Str("url", c.Request.URL.String()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}
