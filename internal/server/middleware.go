package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"medimart-backend/internal/auth"
	"medimart-backend/internal/service"
)

const identityKey = "identity"

// authRequired resolves the bearer token into the caller's identity
// before any protected handler runs.
func (s *Server) authRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(401, gin.H{"error": "missing token"})
		return
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	claims, err := auth.ParseToken(&s.cfg.JWT, tokenStr)
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
		return
	}
	c.Set(identityKey, service.Identity{UserID: userID, Role: claims.Role})
	c.Next()
}

// adminRequired gates admin routes; runs after authRequired.
func (s *Server) adminRequired(c *gin.Context) {
	if !identityFrom(c).IsAdmin() {
		c.AbortWithStatusJSON(403, gin.H{"error": "admin access required"})
		return
	}
	c.Next()
}

func identityFrom(c *gin.Context) service.Identity {
	id, _ := c.Get(identityKey)
	identity, _ := id.(service.Identity)
	return identity
}
