// Package actorctx carries the authenticated actor through request contexts.
package actorctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// AdminRoleSlug is the role slug granted unrestricted access.
const AdminRoleSlug = "admin"

type contextKey struct{}

// Actor identifies the authenticated user for downstream ownership checks.
type Actor struct {
	UserID   snowflake.ID
	RoleSlug string
}

func (a Actor) IsAdmin() bool {
	return a.RoleSlug == AdminRoleSlug
}

// Owns reports whether the actor may mutate a resource owned by ownerID:
// the owning user or any admin.
func (a Actor) Owns(ownerID snowflake.ID) bool {
	return a.IsAdmin() || a.UserID == ownerID
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

func FromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(contextKey{}).(Actor)
	return actor, ok
}
