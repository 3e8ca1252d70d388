package server

import "github.com/gin-gonic/gin"

type listQuery struct {
	Page       string `form:"page"`
	Limit      string `form:"limit"`
	Search     string `form:"search"`
	Status     string `form:"status"`
	SortBy     string `form:"sortBy"`
	OrderBy    string `form:"orderBy"`
	UserID     string `form:"userId"`
	BusinessID string `form:"businessId"`
	CategoryID string `form:"categoryId"`
	RoleID     string `form:"roleId"`
	PlanID     string `form:"subscriptionPlanId"`
}

func bindListQuery(c *gin.Context) (listQuery, bool) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return query, false
	}
	return query, true
}
