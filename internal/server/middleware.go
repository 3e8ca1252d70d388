package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/menuku/menuku/internal/actorctx"
	"github.com/menuku/menuku/internal/authorization"
)

const currentUserKey = "currentUser"

// AuthRequired verifies the bearer credential, resolves the subject against
// the store and attaches the actor to the request context. One store read
// per request.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, err := s.issuer.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		user, err := s.authSvc.Resolve(c.Request.Context(), userID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		actor := actorctx.Actor{UserID: user.ID}
		if user.Role != nil {
			actor.RoleSlug = user.Role.Slug
		}
		c.Set(currentUserKey, user)
		c.Request = c.Request.WithContext(actorctx.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// requirePermission gates a route on the coarse role policy.
func (s *Server) requirePermission(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorctx.FromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), actor.RoleSlug, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorctx.FromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !actor.IsAdmin() {
			AbortWithError(c, authorization.ErrForbidden)
			return
		}
		c.Next()
	}
}

// rateLimited throttles credential endpoints per client address when the
// Redis-backed limiter is configured.
func (s *Server) rateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.credLimiter.Enabled() {
			c.Next()
			return
		}
		allowed, err := s.credLimiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			s.log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			AbortWithError(c, ErrTooManyRequest)
			return
		}
		c.Next()
	}
}
