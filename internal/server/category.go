package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	categorydomain "github.com/menuku/menuku/internal/category/domain"
)

func (s *Server) CreateCategory(c *gin.Context) {
	var req categorydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	category, err := s.categorySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, "category created", category)
}

func (s *Server) ListCategories(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := s.categorySvc.List(c.Request.Context(), categorydomain.ListRequest{
		Page:       query.Page,
		Limit:      query.Limit,
		Search:     query.Search,
		Status:     query.Status,
		BusinessID: query.BusinessID,
		SortBy:     query.SortBy,
		OrderBy:    query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "categories retrieved", result)
}

func (s *Server) GetCategory(c *gin.Context) {
	category, err := s.categorySvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "category retrieved", category)
}

func (s *Server) UpdateCategory(c *gin.Context) {
	var req categorydomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	category, err := s.categorySvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "category updated", category)
}

func (s *Server) DeleteCategory(c *gin.Context) {
	if err := s.categorySvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "category deleted", nil)
}
