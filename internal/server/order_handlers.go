package server

import (
	"github.com/gin-gonic/gin"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/models"
	"medimart-backend/internal/service"
)

func (s *Server) createOrder(c *gin.Context) {
	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	summary, err := s.orders.Create(c.Request.Context(), identityFrom(c).UserID, input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(201, summary)
}

func (s *Server) myOrders(c *gin.Context) {
	summaries, err := s.orders.ListMine(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, summaries)
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := s.orders.Get(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, detail)
}

func (s *Server) cancelOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	summary, err := s.orders.Cancel(c.Request.Context(), identityFrom(c).UserID, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, summary)
}

func (s *Server) listAllOrders(c *gin.Context) {
	orders, err := s.orders.ListAll(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, orders)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	summary, err := s.orders.UpdateStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, summary)
}
