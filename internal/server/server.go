// Package server is the HTTP layer: routing, auth middleware, and the
// translation of service results into JSON responses.
package server

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/config"
	"medimart-backend/internal/service"
)

type Server struct {
	cfg           *config.Config
	accounts      *service.AccountService
	catalog       *service.CatalogService
	orders        *service.OrderService
	notifications *service.NotificationService
	analytics     *service.AnalyticsService
}

func New(
	cfg *config.Config,
	accounts *service.AccountService,
	catalog *service.CatalogService,
	orders *service.OrderService,
	notifications *service.NotificationService,
	analytics *service.AnalyticsService,
) *Server {
	return &Server{
		cfg:           cfg,
		accounts:      accounts,
		catalog:       catalog,
		orders:        orders,
		notifications: notifications,
		analytics:     analytics,
	}
}

// fail translates a service error into its HTTP response. Internal
// failures are logged and masked outside debug mode.
func (s *Server) fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= 500 {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperr.Message(err, s.cfg.Debug)})
}

// parseID converts a path parameter into an ObjectID.
func parseID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(400, gin.H{"error": "malformed id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
