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
	"github.com/menuku/menuku/internal/business/domain"
	contactdomain "github.com/menuku/menuku/internal/contact/domain"
	"github.com/menuku/menuku/internal/events"
	roledomain "github.com/menuku/menuku/internal/role/domain"
	"github.com/menuku/menuku/pkg/db"
	"github.com/menuku/menuku/pkg/repository"
)

type businessFixture struct {
	svc       domain.Service
	conn      *gorm.DB
	node      *snowflake.Node
	ownerID   snowflake.ID
	contactID snowflake.ID
}

func setupBusinessService(t *testing.T) *businessFixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&roledomain.Role{},
		&authdomain.User{},
		&contactdomain.MessagingContact{},
		&domain.Business{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	ownerID := seedUser(t, conn, node, "owner")
	contactID := seedContact(t, conn, node, ownerID)

	svc := New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.ProvideStore[domain.Business](conn),
		Contacts: repository.ProvideStore[contactdomain.MessagingContact](conn),
		Notifier: events.NopNotifier{},
	})
	return &businessFixture{svc: svc, conn: conn, node: node, ownerID: ownerID, contactID: contactID}
}

func seedUser(t *testing.T, conn *gorm.DB, node *snowflake.Node, username string) snowflake.ID {
	t.Helper()
	now := time.Now().UTC()
	user := &authdomain.User{
		ID:           node.Generate(),
		Name:         username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Status:       authdomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, conn.Create(user).Error)
	return user.ID
}

func seedContact(t *testing.T, conn *gorm.DB, node *snowflake.Node, userID snowflake.ID) snowflake.ID {
	t.Helper()
	now := time.Now().UTC()
	contact := &contactdomain.MessagingContact{
		ID:          node.Generate(),
		UserID:      userID,
		Name:        "WhatsApp",
		PhoneNumber: "+628123456789",
		Status:      contactdomain.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, conn.Create(contact).Error)
	return contact.ID
}

func asActor(userID snowflake.ID, role string) context.Context {
	return actorctx.WithActor(context.Background(), actorctx.Actor{UserID: userID, RoleSlug: role})
}

func TestBusinessCreateOwnedContact(t *testing.T) {
	f := setupBusinessService(t)
	ctx := asActor(f.ownerID, "user")

	business, err := f.svc.Create(ctx, domain.CreateRequest{
		MessagingContactID: f.contactID.String(),
		Name:               "Warung Makan",
		Location:           "Jakarta",
	})
	require.NoError(t, err)
	require.Equal(t, f.ownerID, business.UserID)
	require.Equal(t, f.contactID, business.MessagingContactID)
	require.Equal(t, domain.StatusPending, business.Status)
	require.NotNil(t, business.MessagingContact)
}

func TestBusinessCreateForeignContactForbidden(t *testing.T) {
	f := setupBusinessService(t)
	strangerID := seedUser(t, f.conn, f.node, "stranger")
	ctx := asActor(strangerID, "user")

	_, err := f.svc.Create(ctx, domain.CreateRequest{
		MessagingContactID: f.contactID.String(),
		Name:               "Hijack",
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBusinessUpdateNonOwnerForbidden(t *testing.T) {
	f := setupBusinessService(t)

	business, err := f.svc.Create(asActor(f.ownerID, "user"), domain.CreateRequest{
		MessagingContactID: f.contactID.String(),
		Name:               "Warung Makan",
	})
	require.NoError(t, err)

	strangerID := seedUser(t, f.conn, f.node, "stranger")
	name := "Taken Over"
	_, err = f.svc.Update(asActor(strangerID, "user"), business.ID.String(), domain.UpdateRequest{Name: &name})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBusinessUpdateAdminAllowed(t *testing.T) {
	f := setupBusinessService(t)

	business, err := f.svc.Create(asActor(f.ownerID, "user"), domain.CreateRequest{
		MessagingContactID: f.contactID.String(),
		Name:               "Warung Makan",
	})
	require.NoError(t, err)

	adminID := seedUser(t, f.conn, f.node, "admin")
	status := domain.StatusActive
	updated, err := f.svc.Update(asActor(adminID, actorctx.AdminRoleSlug), business.ID.String(), domain.UpdateRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, updated.Status)
}

func TestBusinessListScopesForeignUserFilter(t *testing.T) {
	f := setupBusinessService(t)

	_, err := f.svc.Create(asActor(f.ownerID, "user"), domain.CreateRequest{
		MessagingContactID: f.contactID.String(),
		Name:               "Warung Makan",
	})
	require.NoError(t, err)

	strangerID := seedUser(t, f.conn, f.node, "stranger")
	_, err = f.svc.List(asActor(strangerID, "user"), domain.ListRequest{UserID: f.ownerID.String()})
	require.ErrorIs(t, err, domain.ErrForbidden)

	// Admins and the owner may filter by that user.
	result, err := f.svc.List(asActor(f.ownerID, "user"), domain.ListRequest{UserID: f.ownerID.String()})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)

	// Anonymous listing stays open.
	result, err = f.svc.List(context.Background(), domain.ListRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
}

func TestBusinessDeleteOwner(t *testing.T) {
	f := setupBusinessService(t)
	ctx := asActor(f.ownerID, "user")

	business, err := f.svc.Create(ctx, domain.CreateRequest{
		MessagingContactID: f.contactID.String(),
		Name:               "Warung Makan",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, business.ID.String()))

	_, err = f.svc.Get(ctx, business.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
