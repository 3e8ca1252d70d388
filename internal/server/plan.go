package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	plandomain "github.com/menuku/menuku/internal/plan/domain"
)

func (s *Server) CreateSubscriptionPlan(c *gin.Context) {
	var req plandomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	plan, err := s.planSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, "subscription plan created", plan)
}

func (s *Server) ListSubscriptionPlans(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := s.planSvc.List(c.Request.Context(), plandomain.ListRequest{
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

	respondOK(c, "subscription plans retrieved", result)
}

func (s *Server) GetSubscriptionPlan(c *gin.Context) {
	plan, err := s.planSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "subscription plan retrieved", plan)
}

func (s *Server) UpdateSubscriptionPlan(c *gin.Context) {
	var req plandomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	plan, err := s.planSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "subscription plan updated", plan)
}

func (s *Server) DeleteSubscriptionPlan(c *gin.Context) {
	if err := s.planSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "subscription plan deleted", nil)
}
