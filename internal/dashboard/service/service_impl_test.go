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
	businessdomain "github.com/menuku/menuku/internal/business/domain"
	categorydomain "github.com/menuku/menuku/internal/category/domain"
	"github.com/menuku/menuku/internal/dashboard/domain"
	itemdomain "github.com/menuku/menuku/internal/item/domain"
	orderdomain "github.com/menuku/menuku/internal/order/domain"
	roledomain "github.com/menuku/menuku/internal/role/domain"
	"github.com/menuku/menuku/pkg/db"
	"github.com/menuku/menuku/pkg/repository"
)

type dashboardFixture struct {
	svc  domain.Service
	conn *gorm.DB
	node *snowflake.Node
}

func setupDashboardService(t *testing.T) *dashboardFixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&roledomain.Role{},
		&authdomain.User{},
		&businessdomain.Business{},
		&categorydomain.Category{},
		&itemdomain.Item{},
		&orderdomain.Order{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:         conn,
		Log:        zap.NewNop(),
		Users:      repository.ProvideStore[authdomain.User](conn),
		Businesses: repository.ProvideStore[businessdomain.Business](conn),
		Categories: repository.ProvideStore[categorydomain.Category](conn),
		Items:      repository.ProvideStore[itemdomain.Item](conn),
		Orders:     repository.ProvideStore[orderdomain.Order](conn),
	})
	return &dashboardFixture{svc: svc, conn: conn, node: node}
}

func (f *dashboardFixture) seedUser(t *testing.T, username string) snowflake.ID {
	t.Helper()
	now := time.Now().UTC()
	user := &authdomain.User{
		ID:           f.node.Generate(),
		Name:         username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Status:       authdomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.conn.Create(user).Error)
	return user.ID
}

func (f *dashboardFixture) seedWorld(t *testing.T, ownerID snowflake.ID, categories, items, orders int) snowflake.ID {
	t.Helper()
	now := time.Now().UTC()
	business := &businessdomain.Business{
		ID:        f.node.Generate(),
		UserID:    ownerID,
		Name:      "Warung",
		Status:    businessdomain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.conn.Create(business).Error)

	var categoryID snowflake.ID
	for i := 0; i < categories; i++ {
		category := &categorydomain.Category{
			ID:         f.node.Generate(),
			BusinessID: business.ID,
			Name:       f.node.Generate().String(),
			Slug:       f.node.Generate().String(),
			Status:     categorydomain.StatusActive,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		require.NoError(t, f.conn.Create(category).Error)
		categoryID = category.ID
	}
	for i := 0; i < items; i++ {
		require.NoError(t, f.conn.Create(&itemdomain.Item{
			ID:         f.node.Generate(),
			CategoryID: categoryID,
			BusinessID: business.ID,
			Name:       "Item",
			Status:     itemdomain.StatusActive,
			CreatedAt:  now,
			UpdatedAt:  now,
		}).Error)
	}
	for i := 0; i < orders; i++ {
		require.NoError(t, f.conn.Create(&orderdomain.Order{
			ID:         f.node.Generate(),
			BusinessID: business.ID,
			Name:       "Customer",
			Status:     orderdomain.StatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}).Error)
	}
	return business.ID
}

func asActor(userID snowflake.ID, role string) context.Context {
	return actorctx.WithActor(context.Background(), actorctx.Actor{UserID: userID, RoleSlug: role})
}

func TestDashboardStatsScopedToOwner(t *testing.T) {
	f := setupDashboardService(t)
	ownerID := f.seedUser(t, "owner")
	otherID := f.seedUser(t, "other")
	f.seedWorld(t, ownerID, 2, 3, 4)
	f.seedWorld(t, otherID, 1, 1, 1)

	stats, err := f.svc.Stats(asActor(ownerID, "user"), domain.StatsRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.Businesses)
	require.EqualValues(t, 2, stats.Categories)
	require.EqualValues(t, 3, stats.Items)
	require.EqualValues(t, 4, stats.Orders)
	require.Nil(t, stats.Users)
}

func TestDashboardStatsAdminSeesEverything(t *testing.T) {
	f := setupDashboardService(t)
	ownerID := f.seedUser(t, "owner")
	otherID := f.seedUser(t, "other")
	adminID := f.seedUser(t, "admin")
	f.seedWorld(t, ownerID, 2, 3, 4)
	f.seedWorld(t, otherID, 1, 1, 1)

	stats, err := f.svc.Stats(asActor(adminID, actorctx.AdminRoleSlug), domain.StatsRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.Businesses)
	require.EqualValues(t, 3, stats.Categories)
	require.EqualValues(t, 4, stats.Items)
	require.EqualValues(t, 5, stats.Orders)
	require.NotNil(t, stats.Users)
	require.EqualValues(t, 3, *stats.Users)
}

func TestDashboardStatsForeignUserForbidden(t *testing.T) {
	f := setupDashboardService(t)
	ownerID := f.seedUser(t, "owner")
	otherID := f.seedUser(t, "other")

	_, err := f.svc.Stats(asActor(ownerID, "user"), domain.StatsRequest{UserID: otherID.String()})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDashboardStatsForeignBusinessForbidden(t *testing.T) {
	f := setupDashboardService(t)
	ownerID := f.seedUser(t, "owner")
	strangerID := f.seedUser(t, "stranger")
	businessID := f.seedWorld(t, ownerID, 2, 3, 4)

	// A non-admin filtering by someone else's business gets no counts.
	_, err := f.svc.Stats(asActor(strangerID, "user"), domain.StatsRequest{BusinessID: businessID.String()})
	require.ErrorIs(t, err, domain.ErrForbidden)

	// Admins may filter by any business.
	adminID := f.seedUser(t, "admin")
	stats, err := f.svc.Stats(asActor(adminID, actorctx.AdminRoleSlug), domain.StatsRequest{BusinessID: businessID.String()})
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.Categories)

	// An unknown business is reported, not silently counted as empty.
	_, err = f.svc.Stats(asActor(ownerID, "user"), domain.StatsRequest{BusinessID: "987654321"})
	require.ErrorIs(t, err, businessdomain.ErrNotFound)
}

func TestDashboardStatsBusinessFilter(t *testing.T) {
	f := setupDashboardService(t)
	ownerID := f.seedUser(t, "owner")
	first := f.seedWorld(t, ownerID, 2, 3, 4)
	f.seedWorld(t, ownerID, 1, 1, 1)

	stats, err := f.svc.Stats(asActor(ownerID, "user"), domain.StatsRequest{BusinessID: first.String()})
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.Businesses)
	require.EqualValues(t, 2, stats.Categories)
	require.EqualValues(t, 3, stats.Items)
	require.EqualValues(t, 4, stats.Orders)
}
