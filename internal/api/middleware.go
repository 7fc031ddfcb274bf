package api

import (
	"net/http"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/auth"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	passwordHeader  = "x-password"
)

// RequestID tags every request with an id and a request scoped logger
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		l := logger.GetLogger().With(requestIDKey, id)
		c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), l))
		c.Next()
	}
}

// RequestLogger writes one structured line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		l := logger.WithContext(c.Request.Context())
		switch {
		case status >= http.StatusInternalServerError:
			l.Error("Request failed", fields...)
		case status >= http.StatusBadRequest:
			l.Warn("Request rejected", fields...)
		default:
			l.Info("Request handled", fields...)
		}
	}
}

// Recovery turns a panic into a 500 with the usual error body
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithContext(c.Request.Context()).Error("Panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

// RequirePassword rejects requests whose x-password header does not match
func RequirePassword(checker *auth.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.Check(c.GetHeader(passwordHeader)) {
			err := apperrors.NewAuthError()
			c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": err.Message})
			return
		}
		c.Next()
	}
}
