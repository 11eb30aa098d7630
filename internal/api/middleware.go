package api

import (
	"net/http"
	"time"

	"github.com/blogify-api/internal/metrics"
	"github.com/blogify-api/internal/security"
	"github.com/blogify-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const actorKey = "actor"

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				respondFail(c, http.StatusInternalServerError, "Server Error")
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests and records request metrics
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		metrics.RecordRequest(c.Request.Method, c.FullPath(), statusCode, duration)

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS for the single-page front end
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// bodyLimitMiddleware caps request bodies; inline images make post
// payloads large, so the limit is configurable
func bodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// authMiddleware requires a valid bearer token and stores the caller
func authMiddleware(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := security.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			respondFail(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		actor, err := auth.Authenticate(token)
		if err != nil {
			respondFail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// actorFrom returns the caller stored by authMiddleware
func actorFrom(c *gin.Context) *service.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*service.Actor)
	return actor
}
