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
	plandomain "github.com/menuku/menuku/internal/plan/domain"
	roledomain "github.com/menuku/menuku/internal/role/domain"
	"github.com/menuku/menuku/internal/subscription/domain"
	"github.com/menuku/menuku/pkg/db"
	"github.com/menuku/menuku/pkg/repository"
)

type subscriptionFixture struct {
	svc    domain.Service
	conn   *gorm.DB
	node   *snowflake.Node
	userID snowflake.ID
	planID snowflake.ID
}

func setupSubscriptionService(t *testing.T) *subscriptionFixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&roledomain.Role{},
		&authdomain.User{},
		&plandomain.SubscriptionPlan{},
		&domain.UserSubscriptionPlan{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	userID := seedUser(t, conn, node, "subscriber")
	planID := seedPlan(t, conn, node, "Basic", 3)

	svc := New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.ProvideStore[domain.UserSubscriptionPlan](conn),
		Plans:    repository.ProvideStore[plandomain.SubscriptionPlan](conn),
		Users:    repository.ProvideStore[authdomain.User](conn),
		Notifier: events.NopNotifier{},
	})
	return &subscriptionFixture{svc: svc, conn: conn, node: node, userID: userID, planID: planID}
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

func seedPlan(t *testing.T, conn *gorm.DB, node *snowflake.Node, name string, duration int) snowflake.ID {
	t.Helper()
	now := time.Now().UTC()
	plan := &plandomain.SubscriptionPlan{
		ID:           node.Generate(),
		Name:         name,
		Slug:         name,
		Duration:     duration,
		MaxBusiness:  1,
		MaxCategory:  1,
		MaxItem:      1,
		AnalysisType: plandomain.AnalysisBasic,
		Status:       plandomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, conn.Create(plan).Error)
	return plan.ID
}

func asActor(userID snowflake.ID, role string) context.Context {
	return actorctx.WithActor(context.Background(), actorctx.Actor{UserID: userID, RoleSlug: role})
}

func TestSubscriptionCreateDerivesEndDate(t *testing.T) {
	f := setupSubscriptionService(t)
	ctx := asActor(f.userID, "user")

	sub, err := f.svc.Create(ctx, domain.CreateRequest{
		SubscriptionPlanID: f.planID.String(),
		StartDate:          "2026-01-15",
	})
	require.NoError(t, err)
	require.Equal(t, f.userID, sub.UserID)
	require.Equal(t, domain.StatusActive, sub.Status)

	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	require.True(t, sub.StartDate.Equal(start))
	require.True(t, sub.EndDate.Equal(start.AddDate(0, 3, 0)))
}

func TestSubscriptionSingleActivePerUser(t *testing.T) {
	f := setupSubscriptionService(t)
	ctx := asActor(f.userID, "user")

	_, err := f.svc.Create(ctx, domain.CreateRequest{SubscriptionPlanID: f.planID.String()})
	require.NoError(t, err)

	otherPlan := seedPlan(t, f.conn, f.node, "Pro", 12)
	_, err = f.svc.Create(ctx, domain.CreateRequest{SubscriptionPlanID: otherPlan.String()})
	require.ErrorIs(t, err, domain.ErrAlreadyActive)
}

func TestSubscriptionCreateForOtherUser(t *testing.T) {
	f := setupSubscriptionService(t)
	otherID := seedUser(t, f.conn, f.node, "other")

	// Plain users cannot subscribe someone else.
	_, err := f.svc.Create(asActor(f.userID, "user"), domain.CreateRequest{
		UserID:             otherID.String(),
		SubscriptionPlanID: f.planID.String(),
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	adminID := seedUser(t, f.conn, f.node, "admin")
	sub, err := f.svc.Create(asActor(adminID, actorctx.AdminRoleSlug), domain.CreateRequest{
		UserID:             otherID.String(),
		SubscriptionPlanID: f.planID.String(),
	})
	require.NoError(t, err)
	require.Equal(t, otherID, sub.UserID)
}

func TestSubscriptionCreateUnknownReferences(t *testing.T) {
	f := setupSubscriptionService(t)
	ctx := asActor(f.userID, "user")

	_, err := f.svc.Create(ctx, domain.CreateRequest{SubscriptionPlanID: "nope"})
	require.ErrorIs(t, err, domain.ErrInvalidPlanID)

	_, err = f.svc.Create(ctx, domain.CreateRequest{SubscriptionPlanID: "987654321"})
	require.ErrorIs(t, err, plandomain.ErrNotFound)

	_, err = f.svc.Create(ctx, domain.CreateRequest{
		SubscriptionPlanID: f.planID.String(),
		StartDate:          "15/01/2026",
	})
	require.ErrorIs(t, err, domain.ErrInvalidStartDate)
}

func TestSubscriptionListScopedToOwnUser(t *testing.T) {
	f := setupSubscriptionService(t)

	_, err := f.svc.Create(asActor(f.userID, "user"), domain.CreateRequest{SubscriptionPlanID: f.planID.String()})
	require.NoError(t, err)

	otherID := seedUser(t, f.conn, f.node, "other")
	_, err = f.svc.Create(asActor(otherID, "user"), domain.CreateRequest{SubscriptionPlanID: f.planID.String()})
	require.NoError(t, err)

	mine, err := f.svc.List(asActor(f.userID, "user"), domain.ListRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, mine.Total)

	adminID := seedUser(t, f.conn, f.node, "admin")
	all, err := f.svc.List(asActor(adminID, actorctx.AdminRoleSlug), domain.ListRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 2, all.Total)

	_, err = f.svc.List(asActor(f.userID, "user"), domain.ListRequest{UserID: otherID.String()})
	require.ErrorIs(t, err, domain.ErrForbidden)
}
