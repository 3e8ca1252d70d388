package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	roledomain "github.com/menuku/menuku/internal/role/domain"
)

func (s *Server) CreateRole(c *gin.Context) {
	var req roledomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	role, err := s.roleSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, "role created", role)
}

func (s *Server) ListRoles(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := s.roleSvc.List(c.Request.Context(), roledomain.ListRequest{
		Page:    query.Page,
		Limit:   query.Limit,
		Search:  query.Search,
		Status:  query.Status,
		SortBy:  query.SortBy,
		OrderBy: query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "roles retrieved", result)
}

func (s *Server) GetRole(c *gin.Context) {
	role, err := s.roleSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "role retrieved", role)
}

func (s *Server) UpdateRole(c *gin.Context) {
	var req roledomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	role, err := s.roleSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "role updated", role)
}

func (s *Server) DeleteRole(c *gin.Context) {
	if err := s.roleSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "role deleted", nil)
}
