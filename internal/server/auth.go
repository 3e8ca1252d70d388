package server

import (
	"github.com/gin-gonic/gin"

	authdomain "github.com/menuku/menuku/internal/auth/domain"
)

func (s *Server) Signup(c *gin.Context) {
	var req authdomain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	user, err := s.authSvc.Signup(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, "signup successful", user)
}

func (s *Server) Signin(c *gin.Context) {
	var req authdomain.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.authSvc.Signin(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "signin successful", result)
}

func (s *Server) OAuthSignin(c *gin.Context) {
	var req authdomain.OAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.authSvc.OAuth(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "signin successful", result)
}
