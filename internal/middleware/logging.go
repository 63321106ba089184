// internal/middleware/logging.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/utils"
)

// EventLogMiddleware records a page_view analytics event for public GET
// endpoints. Events are append-only; writes happen off the request path so a
// slow insert never delays a response.
func EventLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only successful public GETs count as page views
		if c.Request.Method != "GET" || c.Writer.Status() != 200 {
			return
		}
		if c.Request.URL.Path == "/health" {
			return
		}

		// Visitor identity is stored as a hash so distinct views can be
		// grouped without keeping raw addresses
		event := &models.Event{
			Type:  models.EventTypePageView,
			Path:  c.Request.URL.Path,
			Query: c.Request.URL.RawQuery,
			Metadata: models.JSONB{
				"visitor": utils.HashString(c.ClientIP())[:16],
			},
		}

		go func() {
			if err := db.Create(event).Error; err != nil {
				logrus.WithError(err).Error("Failed to record page view event")
			}
		}()
	}
}

// RequestLogger emits one structured log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).Milliseconds(),
			"ip":       c.ClientIP(),
		}).Info("Request processed")
	}
}
