package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	subscriptiondomain "github.com/menuku/menuku/internal/subscription/domain"
)

func (s *Server) CreateUserSubscriptionPlan(c *gin.Context) {
	var req subscriptiondomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	sub, err := s.subscriptionSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, "subscription created", sub)
}

func (s *Server) ListUserSubscriptionPlans(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := s.subscriptionSvc.List(c.Request.Context(), subscriptiondomain.ListRequest{
		Page:    query.Page,
		Limit:   query.Limit,
		Status:  query.Status,
		UserID:  query.UserID,
		PlanID:  query.PlanID,
		SortBy:  query.SortBy,
		OrderBy: query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "subscriptions retrieved", result)
}

func (s *Server) GetUserSubscriptionPlan(c *gin.Context) {
	sub, err := s.subscriptionSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "subscription retrieved", sub)
}

func (s *Server) UpdateUserSubscriptionPlan(c *gin.Context) {
	var req subscriptiondomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	sub, err := s.subscriptionSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "subscription updated", sub)
}

func (s *Server) DeleteUserSubscriptionPlan(c *gin.Context) {
	if err := s.subscriptionSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "subscription deleted", nil)
}
