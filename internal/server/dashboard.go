package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	dashboarddomain "github.com/menuku/menuku/internal/dashboard/domain"
)

func (s *Server) DashboardStats(c *gin.Context) {
	stats, err := s.dashboardSvc.Stats(c.Request.Context(), dashboarddomain.StatsRequest{
		UserID:     strings.TrimSpace(c.Query("userId")),
		BusinessID: strings.TrimSpace(c.Query("businessId")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, "dashboard stats retrieved", stats)
}
