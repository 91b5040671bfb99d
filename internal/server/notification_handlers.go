package server

import (
	"github.com/gin-gonic/gin"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/service"
)

func (s *Server) publishNotification(c *gin.Context) {
	var input service.NotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	n, err := s.notifications.Publish(c.Request.Context(), identityFrom(c).UserID, input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(201, n)
}

func (s *Server) listNotifications(c *gin.Context) {
	list, err := s.notifications.ListForUser(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, list)
}

func (s *Server) markNotificationRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.notifications.MarkRead(c.Request.Context(), id, identityFrom(c).UserID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "read"})
}
