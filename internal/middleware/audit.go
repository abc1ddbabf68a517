package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/gradecalc-api/internal/models"
)

// AuditRecorder persists audit log entries.
type AuditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// Audit creates a middleware that records audit logs after successful requests.
func Audit(recorder AuditRecorder, logger *zap.Logger, action, resource string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if recorder == nil || c.Writer.Status() >= 400 {
			return
		}

		var userID *string
		if claims, ok := c.Get(ContextUserKey); ok {
			if user, ok := claims.(*models.JWTClaims); ok {
				userID = &user.UserID
			}
		}

		body, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"query":   c.Request.URL.RawQuery,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		if err := recorder.CreateAuditLog(c.Request.Context(), &models.AuditLog{
			UserID:    userID,
			Action:    action,
			Resource:  resource,
			NewValues: body,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}); err != nil {
			logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
		}
	}
}
