package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/menuku/menuku/internal/actorctx"
	authdomain "github.com/menuku/menuku/internal/auth/domain"
	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/internal/password"
	roledomain "github.com/menuku/menuku/internal/role/domain"
	"github.com/menuku/menuku/internal/user/domain"
	"github.com/menuku/menuku/pkg/db"
	"github.com/menuku/menuku/pkg/repository"
)

type userFixture struct {
	svc     domain.Service
	conn    *gorm.DB
	node    *snowflake.Node
	roleID  snowflake.ID
	adminID snowflake.ID
}

func setupUserService(t *testing.T) *userFixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&roledomain.Role{},
		&authdomain.User{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &userFixture{
		conn: conn,
		node: node,
		svc: New(Params{
			DB:       conn,
			Log:      zap.NewNop(),
			Users:    repository.ProvideStore[authdomain.User](conn),
			Roles:    repository.ProvideStore[roledomain.Role](conn),
			Notifier: events.NopNotifier{},
		}),
	}
	f.roleID = f.seedRole(t, "User", "user")
	adminRoleID := f.seedRole(t, "Admin", actorctx.AdminRoleSlug)
	f.adminID = f.seedUser(t, seededUser{name: "Root", username: "root", email: "root@example.com", roleID: adminRoleID})
	return f
}

func (f *userFixture) seedRole(t *testing.T, name, slug string) snowflake.ID {
	t.Helper()
	now := time.Now().UTC()
	role := &roledomain.Role{
		ID:        f.node.Generate(),
		Name:      name,
		Slug:      slug,
		Status:    roledomain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.conn.Create(role).Error)
	return role.ID
}

type seededUser struct {
	name      string
	username  string
	email     string
	phone     string
	roleID    snowflake.ID
	createdAt time.Time
}

func (f *userFixture) seedUser(t *testing.T, in seededUser) snowflake.ID {
	t.Helper()
	if in.roleID == 0 {
		in.roleID = f.roleID
	}
	if in.createdAt.IsZero() {
		in.createdAt = time.Now().UTC()
	}
	user := &authdomain.User{
		ID:           f.node.Generate(),
		Name:         in.name,
		Username:     in.username,
		Email:        in.email,
		PasswordHash: "x",
		Phone:        in.phone,
		RoleID:       in.roleID,
		Status:       authdomain.StatusActive,
		CreatedAt:    in.createdAt,
		UpdatedAt:    in.createdAt,
	}
	require.NoError(t, f.conn.Create(user).Error)
	return user.ID
}

func asActor(userID snowflake.ID, role string) context.Context {
	return actorctx.WithActor(context.Background(), actorctx.Actor{UserID: userID, RoleSlug: role})
}

func TestUserListAdminSearch(t *testing.T) {
	f := setupUserService(t)
	base := time.Now().UTC().Add(-time.Hour)

	// One match per searchable column, seeded oldest first.
	byName := f.seedUser(t, seededUser{name: "John Carter", username: "jcarter", email: "jc@example.com", createdAt: base})
	byUsername := f.seedUser(t, seededUser{name: "Sari", username: "johndoe", email: "sari@example.com", createdAt: base.Add(time.Minute)})
	byEmail := f.seedUser(t, seededUser{name: "Budi", username: "budi", email: "john@example.com", createdAt: base.Add(2 * time.Minute)})
	f.seedUser(t, seededUser{name: "Ayu", username: "ayu", email: "ayu@example.com", createdAt: base.Add(3 * time.Minute)})

	result, err := f.svc.List(asActor(f.adminID, actorctx.AdminRoleSlug), domain.ListRequest{Search: "John"})
	require.NoError(t, err)
	require.EqualValues(t, 3, result.Total)
	require.Len(t, result.Data, 3)

	// Default ordering is created_at desc.
	require.Equal(t, byEmail, result.Data[0].ID)
	require.Equal(t, byUsername, result.Data[1].ID)
	require.Equal(t, byName, result.Data[2].ID)
	require.NotNil(t, result.Data[0].Role)
}

func TestUserListPhoneSearch(t *testing.T) {
	f := setupUserService(t)
	matched := f.seedUser(t, seededUser{name: "Sari", username: "sari", email: "sari@example.com", phone: "+628123456789"})
	f.seedUser(t, seededUser{name: "Budi", username: "budi", email: "budi@example.com", phone: "+628999000111"})

	result, err := f.svc.List(asActor(f.adminID, actorctx.AdminRoleSlug), domain.ListRequest{Search: "8123"})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	require.Equal(t, matched, result.Data[0].ID)
}

func TestUserListNonAdminForbidden(t *testing.T) {
	f := setupUserService(t)
	userID := f.seedUser(t, seededUser{name: "Sari", username: "sari", email: "sari@example.com"})

	_, err := f.svc.List(asActor(userID, "user"), domain.ListRequest{})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.List(context.Background(), domain.ListRequest{})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserGetOwnerOrAdmin(t *testing.T) {
	f := setupUserService(t)
	userID := f.seedUser(t, seededUser{name: "Sari", username: "sari", email: "sari@example.com"})
	strangerID := f.seedUser(t, seededUser{name: "Budi", username: "budi", email: "budi@example.com"})

	user, err := f.svc.Get(asActor(userID, "user"), userID.String())
	require.NoError(t, err)
	require.Equal(t, "sari", user.Username)

	_, err = f.svc.Get(asActor(strangerID, "user"), userID.String())
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Get(asActor(f.adminID, actorctx.AdminRoleSlug), userID.String())
	require.NoError(t, err)
}

func TestUserUpdateRoleNonAdminForbidden(t *testing.T) {
	f := setupUserService(t)
	userID := f.seedUser(t, seededUser{name: "Sari", username: "sari", email: "sari@example.com"})

	roleID := f.roleID.String()
	_, err := f.svc.Update(asActor(userID, "user"), userID.String(), domain.UpdateRequest{RoleID: &roleID})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserUpdateRoleAdmin(t *testing.T) {
	f := setupUserService(t)
	userID := f.seedUser(t, seededUser{name: "Sari", username: "sari", email: "sari@example.com"})
	managerRoleID := f.seedRole(t, "Manager", "manager")

	bogus := "987654321"
	_, err := f.svc.Update(asActor(f.adminID, actorctx.AdminRoleSlug), userID.String(), domain.UpdateRequest{RoleID: &bogus})
	require.ErrorIs(t, err, roledomain.ErrNotFound)

	roleID := managerRoleID.String()
	updated, err := f.svc.Update(asActor(f.adminID, actorctx.AdminRoleSlug), userID.String(), domain.UpdateRequest{RoleID: &roleID})
	require.NoError(t, err)
	require.Equal(t, managerRoleID, updated.RoleID)
	require.Equal(t, "manager", updated.Role.Slug)
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	f := setupUserService(t)
	userID := f.seedUser(t, seededUser{name: "Sari", username: "sari", email: "sari@example.com"})
	ctx := asActor(userID, "user")

	short := "short"
	_, err := f.svc.Update(ctx, userID.String(), domain.UpdateRequest{Password: &short})
	require.ErrorIs(t, err, authdomain.ErrWeakPassword)

	plaintext := "hunter2hunter2"
	updated, err := f.svc.Update(ctx, userID.String(), domain.UpdateRequest{Password: &plaintext})
	require.NoError(t, err)
	require.NotEqual(t, plaintext, updated.PasswordHash)
	require.True(t, password.Verify(plaintext, updated.PasswordHash))
}

func TestUserUpdateUsernameTaken(t *testing.T) {
	f := setupUserService(t)
	userID := f.seedUser(t, seededUser{name: "Sari", username: "sari", email: "sari@example.com"})
	f.seedUser(t, seededUser{name: "Budi", username: "budi", email: "budi@example.com"})

	taken := "Budi"
	_, err := f.svc.Update(asActor(userID, "user"), userID.String(), domain.UpdateRequest{Username: &taken})
	require.ErrorIs(t, err, authdomain.ErrUsernameTaken)
}

func TestUserDelete(t *testing.T) {
	f := setupUserService(t)
	userID := f.seedUser(t, seededUser{name: "Sari", username: "sari", email: "sari@example.com"})

	strangerID := f.seedUser(t, seededUser{name: "Budi", username: "budi", email: "budi@example.com"})
	require.ErrorIs(t, f.svc.Delete(asActor(strangerID, "user"), userID.String()), domain.ErrForbidden)

	require.NoError(t, f.svc.Delete(asActor(userID, "user"), userID.String()))
	_, err := f.svc.Get(asActor(f.adminID, actorctx.AdminRoleSlug), userID.String())
	require.ErrorIs(t, err, authdomain.ErrNotFound)
}
