package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const ContextRequestID = "requestID"

// RequestID propaga (ou gera) o id de correlação da request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(ContextRequestID, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// RequestLogger loga cada request com campos estruturados.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"ip":         c.ClientIP(),
			"request_id": c.GetString(ContextRequestID),
		}
		if tenantID, ok := c.Get(ContextTenantID); ok {
			fields["tenant_id"] = tenantID
		}

		logrus.WithFields(fields).Info("request")
	}
}
