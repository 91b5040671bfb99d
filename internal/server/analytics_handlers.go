package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) analyticsSummary(c *gin.Context) {
	summary, err := s.analytics.Summary(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, summary)
}

func (s *Server) analyticsTopProducts(c *gin.Context) {
	limit := 5
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	rows, err := s.analytics.TopProducts(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, rows)
}
