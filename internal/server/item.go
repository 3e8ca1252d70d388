package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	itemdomain "github.com/menuku/menuku/internal/item/domain"
)

func (s *Server) CreateItem(c *gin.Context) {
	var req itemdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	item, err := s.itemSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, "item created", item)
}

func (s *Server) ListItems(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := s.itemSvc.List(c.Request.Context(), itemdomain.ListRequest{
		Page:       query.Page,
		Limit:      query.Limit,
		Search:     query.Search,
		Status:     query.Status,
		BusinessID: query.BusinessID,
		CategoryID: query.CategoryID,
		SortBy:     query.SortBy,
		OrderBy:    query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "items retrieved", result)
}

func (s *Server) GetItem(c *gin.Context) {
	item, err := s.itemSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "item retrieved", item)
}

func (s *Server) UpdateItem(c *gin.Context) {
	var req itemdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	item, err := s.itemSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "item updated", item)
}

func (s *Server) DeleteItem(c *gin.Context) {
	if err := s.itemSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "item deleted", nil)
}
