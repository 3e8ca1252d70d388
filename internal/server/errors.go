package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authdomain "github.com/menuku/menuku/internal/auth/domain"
	"github.com/menuku/menuku/internal/authorization"
	businessdomain "github.com/menuku/menuku/internal/business/domain"
	categorydomain "github.com/menuku/menuku/internal/category/domain"
	contactdomain "github.com/menuku/menuku/internal/contact/domain"
	dashboarddomain "github.com/menuku/menuku/internal/dashboard/domain"
	itemdomain "github.com/menuku/menuku/internal/item/domain"
	orderdomain "github.com/menuku/menuku/internal/order/domain"
	plandomain "github.com/menuku/menuku/internal/plan/domain"
	roledomain "github.com/menuku/menuku/internal/role/domain"
	subscriptiondomain "github.com/menuku/menuku/internal/subscription/domain"
	"github.com/menuku/menuku/internal/token"
	userdomain "github.com/menuku/menuku/internal/user/domain"
	"github.com/menuku/menuku/pkg/db"
)

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrTooManyRequest = errors.New("too_many_requests")
)

var badRequestErrs = []error{
	ErrInvalidRequest,
	roledomain.ErrInvalidID,
	roledomain.ErrInvalidName,
	roledomain.ErrInvalidStatus,
	authdomain.ErrInvalidName,
	authdomain.ErrInvalidUsername,
	authdomain.ErrInvalidEmail,
	authdomain.ErrWeakPassword,
	userdomain.ErrInvalidID,
	userdomain.ErrInvalidRoleID,
	userdomain.ErrInvalidStatus,
	contactdomain.ErrInvalidID,
	contactdomain.ErrInvalidPhone,
	contactdomain.ErrInvalidState,
	businessdomain.ErrInvalidID,
	businessdomain.ErrInvalidName,
	businessdomain.ErrInvalidStatus,
	businessdomain.ErrInvalidContactID,
	categorydomain.ErrInvalidID,
	categorydomain.ErrInvalidBusinessID,
	categorydomain.ErrInvalidName,
	categorydomain.ErrInvalidStatus,
	itemdomain.ErrInvalidID,
	itemdomain.ErrInvalidCategoryID,
	itemdomain.ErrInvalidName,
	itemdomain.ErrInvalidPrice,
	itemdomain.ErrInvalidStatus,
	plandomain.ErrInvalidID,
	plandomain.ErrInvalidName,
	plandomain.ErrInvalidPrice,
	plandomain.ErrInvalidDuration,
	plandomain.ErrInvalidLimit,
	plandomain.ErrInvalidAnalysis,
	plandomain.ErrInvalidStatus,
	subscriptiondomain.ErrInvalidID,
	subscriptiondomain.ErrInvalidPlanID,
	subscriptiondomain.ErrInvalidUserID,
	subscriptiondomain.ErrInvalidStartDate,
	subscriptiondomain.ErrInvalidStatus,
	orderdomain.ErrInvalidID,
	orderdomain.ErrInvalidBusinessID,
	orderdomain.ErrInvalidName,
	orderdomain.ErrInvalidLine,
	orderdomain.ErrEmptyLines,
	dashboarddomain.ErrInvalidUserID,
	dashboarddomain.ErrInvalidBusinessID,
}

var unauthorizedErrs = []error{
	ErrUnauthorized,
	token.ErrExpired,
	token.ErrInvalid,
	authdomain.ErrInvalidCredentials,
}

var forbiddenErrs = []error{
	authorization.ErrForbidden,
	userdomain.ErrForbidden,
	contactdomain.ErrForbidden,
	businessdomain.ErrForbidden,
	categorydomain.ErrForbidden,
	itemdomain.ErrForbidden,
	subscriptiondomain.ErrForbidden,
	orderdomain.ErrForbidden,
	dashboarddomain.ErrForbidden,
}

var notFoundErrs = []error{
	roledomain.ErrNotFound,
	authdomain.ErrNotFound,
	contactdomain.ErrNotFound,
	businessdomain.ErrNotFound,
	categorydomain.ErrNotFound,
	itemdomain.ErrNotFound,
	plandomain.ErrNotFound,
	subscriptiondomain.ErrNotFound,
	orderdomain.ErrNotFound,
}

var conflictErrs = []error{
	roledomain.ErrNameTaken,
	authdomain.ErrUsernameTaken,
	authdomain.ErrEmailTaken,
	categorydomain.ErrNameTaken,
	plandomain.ErrNameTaken,
	subscriptiondomain.ErrAlreadyActive,
	gorm.ErrDuplicatedKey,
}

func mapError(err error) (int, string) {
	switch {
	case matchAny(err, unauthorizedErrs):
		return http.StatusUnauthorized, err.Error()
	case matchAny(err, forbiddenErrs):
		return http.StatusForbidden, err.Error()
	case matchAny(err, notFoundErrs):
		return http.StatusNotFound, err.Error()
	case matchAny(err, conflictErrs) || db.IsDuplicateKeyErr(err):
		return http.StatusConflict, err.Error()
	case matchAny(err, badRequestErrs):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrTooManyRequest):
		return http.StatusTooManyRequests, err.Error()
	}
	return http.StatusInternalServerError, "internal_error"
}

func matchAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ErrorHandlingMiddleware shapes every unhandled error into the response
// envelope. Internal details never reach the client.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, code := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, envelope{
			Success:    false,
			StatusCode: status,
			Message:    code,
			Error:      code,
		})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
