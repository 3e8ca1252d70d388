package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/internal/plan/domain"
	"github.com/menuku/menuku/pkg/db"
	"github.com/menuku/menuku/pkg/repository"
)

type planFixture struct {
	svc  domain.Service
	conn *gorm.DB
}

func setupPlanService(t *testing.T) *planFixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.SubscriptionPlan{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.ProvideStore[domain.SubscriptionPlan](conn),
		Notifier: events.NopNotifier{},
	})
	return &planFixture{svc: svc, conn: conn}
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestPlanCreateDefaults(t *testing.T) {
	f := setupPlanService(t)

	plan, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Name:     "Free Tier",
		Duration: 1,
	})
	require.NoError(t, err)
	require.Equal(t, "free-tier", plan.Slug)
	require.Zero(t, plan.Price)
	require.Equal(t, 1, plan.MaxBusiness)
	require.Equal(t, 1, plan.MaxCategory)
	require.Equal(t, 1, plan.MaxItem)
	require.Equal(t, domain.AnalysisBasic, plan.AnalysisType)
	require.Equal(t, domain.StatusActive, plan.Status)
}

func TestPlanCreateValidation(t *testing.T) {
	f := setupPlanService(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateRequest{Name: "  ", Duration: 1})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = f.svc.Create(ctx, domain.CreateRequest{Name: "Pro", Duration: 0})
	require.ErrorIs(t, err, domain.ErrInvalidDuration)

	_, err = f.svc.Create(ctx, domain.CreateRequest{Name: "Pro", Duration: 1, Price: floatPtr(-5)})
	require.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = f.svc.Create(ctx, domain.CreateRequest{Name: "Pro", Duration: 1, MaxItem: intPtr(0)})
	require.ErrorIs(t, err, domain.ErrInvalidLimit)

	_, err = f.svc.Create(ctx, domain.CreateRequest{Name: "Pro", Duration: 1, AnalysisType: "quantum"})
	require.ErrorIs(t, err, domain.ErrInvalidAnalysis)

	_, err = f.svc.Create(ctx, domain.CreateRequest{Name: "Pro", Duration: 1, Status: "frozen"})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestPlanCreateNameTaken(t *testing.T) {
	f := setupPlanService(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateRequest{Name: "Pro Plan", Duration: 3})
	require.NoError(t, err)

	// Duplicate detection is case-insensitive and catches slug collisions too.
	_, err = f.svc.Create(ctx, domain.CreateRequest{Name: "PRO PLAN", Duration: 3})
	require.ErrorIs(t, err, domain.ErrNameTaken)

	_, err = f.svc.Create(ctx, domain.CreateRequest{Name: "pro   plan", Duration: 3})
	require.ErrorIs(t, err, domain.ErrNameTaken)
}

func TestPlanUpdate(t *testing.T) {
	f := setupPlanService(t)
	ctx := context.Background()

	plan, err := f.svc.Create(ctx, domain.CreateRequest{Name: "Starter", Duration: 1})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, domain.CreateRequest{Name: "Growth", Duration: 3})
	require.NoError(t, err)

	// Renaming onto another plan conflicts; renaming to itself does not.
	taken := "growth"
	_, err = f.svc.Update(ctx, plan.ID.String(), domain.UpdateRequest{Name: &taken})
	require.ErrorIs(t, err, domain.ErrNameTaken)

	same := "Starter"
	_, err = f.svc.Update(ctx, plan.ID.String(), domain.UpdateRequest{Name: &same})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, plan.ID.String(), domain.UpdateRequest{Duration: intPtr(0)})
	require.ErrorIs(t, err, domain.ErrInvalidDuration)

	_, err = f.svc.Update(ctx, plan.ID.String(), domain.UpdateRequest{MaxBusiness: intPtr(0)})
	require.ErrorIs(t, err, domain.ErrInvalidLimit)

	updated, err := f.svc.Update(ctx, plan.ID.String(), domain.UpdateRequest{
		Price:    floatPtr(49000),
		Features: []string{"priority-support"},
		MaxItem:  intPtr(50),
	})
	require.NoError(t, err)
	require.InDelta(t, 49000, updated.Price, 0.001)
	require.Equal(t, 50, updated.MaxItem)
	require.Len(t, updated.Features, 1)
}

func TestPlanListAndDelete(t *testing.T) {
	f := setupPlanService(t)
	ctx := context.Background()

	starter, err := f.svc.Create(ctx, domain.CreateRequest{Name: "Starter", Duration: 1})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, domain.CreateRequest{Name: "Growth", Duration: 3, Status: domain.StatusInactive})
	require.NoError(t, err)

	result, err := f.svc.List(ctx, domain.ListRequest{Status: domain.StatusActive})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	require.Equal(t, "starter", result.Data[0].Slug)

	require.NoError(t, f.svc.Delete(ctx, starter.ID.String()))
	_, err = f.svc.Get(ctx, starter.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.Delete(ctx, "not-a-snowflake")
	require.ErrorIs(t, err, domain.ErrInvalidID)
}
