package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"farmatrack/internal/logger"
	"farmatrack/internal/service"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	userIDKey       = "user_id"
	userRoleKey     = "user_role"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString(requestIDKey))
	}
}

// bearerAuth проверяет токен из Authorization: Bearer <token>
func (s *Server) bearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			fail(c, service.ErrMissingToken)
			return
		}
		claims, err := s.svc.Auth.ParseToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			fail(c, err)
			return
		}
		c.Set(userIDKey, claims.Subject)
		c.Set(userRoleKey, claims.Role)
		c.Next()
	}
}
