package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	orderdomain "github.com/menuku/menuku/internal/order/domain"
)

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	order, err := s.orderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, "order created", order)
}

func (s *Server) ListOrders(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListRequest{
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

	respondOK(c, "orders retrieved", result)
}

func (s *Server) GetOrder(c *gin.Context) {
	order, err := s.orderSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "order retrieved", order)
}

func (s *Server) DeleteOrder(c *gin.Context) {
	if err := s.orderSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "order deleted", nil)
}
