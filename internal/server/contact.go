package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	contactdomain "github.com/menuku/menuku/internal/contact/domain"
)

func (s *Server) CreateMessagingContact(c *gin.Context) {
	var req contactdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	contact, err := s.contactSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, "messaging contact created", contact)
}

func (s *Server) ListMessagingContacts(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := s.contactSvc.List(c.Request.Context(), contactdomain.ListRequest{
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

	respondOK(c, "messaging contacts retrieved", result)
}

func (s *Server) GetMessagingContact(c *gin.Context) {
	contact, err := s.contactSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "messaging contact retrieved", contact)
}

func (s *Server) UpdateMessagingContact(c *gin.Context) {
	var req contactdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	contact, err := s.contactSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "messaging contact updated", contact)
}

func (s *Server) DeleteMessagingContact(c *gin.Context) {
	if err := s.contactSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "messaging contact deleted", nil)
}
