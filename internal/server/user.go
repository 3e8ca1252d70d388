package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "github.com/menuku/menuku/internal/user/domain"
)

func (s *Server) ListUsers(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := s.userSvc.List(c.Request.Context(), userdomain.ListRequest{
		Page:    query.Page,
		Limit:   query.Limit,
		Search:  query.Search,
		Status:  query.Status,
		RoleID:  query.RoleID,
		SortBy:  query.SortBy,
		OrderBy: query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "users retrieved", result)
}

func (s *Server) GetUser(c *gin.Context) {
	user, err := s.userSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "user retrieved", user)
}

func (s *Server) UpdateUser(c *gin.Context) {
	var req userdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	user, err := s.userSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "user updated", user)
}

func (s *Server) DeleteUser(c *gin.Context) {
	if err := s.userSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "user deleted", nil)
}
