package server

import (
	"github.com/gin-gonic/gin"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/service"
)

func (s *Server) register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	user, err := s.accounts.Register(c.Request.Context(), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(201, user)
}

func (s *Server) login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	user, token, err := s.accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, gin.H{"user": user, "token": token})
}

func (s *Server) getProfile(c *gin.Context) {
	user, err := s.accounts.GetProfile(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, user)
}

func (s *Server) updateProfile(c *gin.Context) {
	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, apperr.Invalid("invalid input"))
		return
	}
	user, err := s.accounts.UpdateProfile(c.Request.Context(), identityFrom(c).UserID, input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, user)
}
