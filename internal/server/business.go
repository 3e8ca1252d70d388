package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	businessdomain "github.com/menuku/menuku/internal/business/domain"
)

func (s *Server) CreateBusiness(c *gin.Context) {
	var req businessdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	business, err := s.businessSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, "business created", business)
}

func (s *Server) ListBusinesses(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := s.businessSvc.List(c.Request.Context(), businessdomain.ListRequest{
		Page:    query.Page,
		Limit:   query.Limit,
		Search:  query.Search,
		Status:  query.Status,
		UserID:  query.UserID,
		SortBy:  query.SortBy,
		OrderBy: query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "businesses retrieved", result)
}

func (s *Server) GetBusiness(c *gin.Context) {
	business, err := s.businessSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "business retrieved", business)
}

func (s *Server) UpdateBusiness(c *gin.Context) {
	var req businessdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	business, err := s.businessSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "business updated", business)
}

func (s *Server) DeleteBusiness(c *gin.Context) {
	if err := s.businessSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "business deleted", nil)
}
