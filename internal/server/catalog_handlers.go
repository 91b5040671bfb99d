package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/service"
)

func (s *Server) listProducts(c *gin.Context) {
	filter := service.ListFilter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	}
	if f := c.Query("featured"); f != "" {
		featured, err := strconv.ParseBool(f)
		if err != nil {
			s.fail(c, apperr.Invalid("featured must be true or false"))
			return
		}
		filter.Featured = &featured
	}
	products, err := s.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, products)
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := s.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, product)
}

func (s *Server) createProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	product, err := s.catalog.CreateProduct(c.Request.Context(), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(201, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	product, err := s.catalog.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "deleted"})
}

func (s *Server) addReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	product, err := s.catalog.AddReview(c.Request.Context(), identityFrom(c).UserID, id, input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(201, product)
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.catalog.ListCategories(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, categories)
}

func (s *Server) createCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	category, err := s.catalog.CreateCategory(c.Request.Context(), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(201, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	category, err := s.catalog.UpdateCategory(c.Request.Context(), id, input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "deleted"})
}
