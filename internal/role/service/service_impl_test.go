package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/internal/role/domain"
	"github.com/menuku/menuku/pkg/db"
	"github.com/menuku/menuku/pkg/repository"
)

func setupRoleService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Role{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.ProvideStore[domain.Role](conn),
		Notifier: events.NopNotifier{},
	})
}

func TestRoleCreateDerivesSlug(t *testing.T) {
	svc := setupRoleService(t)
	ctx := context.Background()

	role, err := svc.Create(ctx, domain.CreateRequest{Name: "Store Manager"})
	require.NoError(t, err)
	require.Equal(t, "store-manager", role.Slug)
	require.Equal(t, domain.StatusActive, role.Status)
	require.NotZero(t, role.ID)
}

func TestRoleCreateRejectsCaseInsensitiveDuplicate(t *testing.T) {
	svc := setupRoleService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "Manager"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "MANAGER"})
	require.ErrorIs(t, err, domain.ErrNameTaken)
}

func TestRoleCreateValidation(t *testing.T) {
	svc := setupRoleService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Auditor", Status: "bogus"})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestRoleUpdateRenamesAndReslugs(t *testing.T) {
	svc := setupRoleService(t)
	ctx := context.Background()

	role, err := svc.Create(ctx, domain.CreateRequest{Name: "Cashier"})
	require.NoError(t, err)

	name := "Head Cashier"
	updated, err := svc.Update(ctx, role.ID.String(), domain.UpdateRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Head Cashier", updated.Name)
	require.Equal(t, "head-cashier", updated.Slug)
}

func TestRoleListPagination(t *testing.T) {
	svc := setupRoleService(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := svc.Create(ctx, domain.CreateRequest{Name: fmt.Sprintf("Role %02d", i)})
		require.NoError(t, err)
	}

	result, err := svc.List(ctx, domain.ListRequest{Page: "2"})
	require.NoError(t, err)
	require.EqualValues(t, 15, result.Total)
	require.Equal(t, 2, result.Page)
	require.Equal(t, 10, result.Limit)
	require.Len(t, result.Data, 5)
}

func TestRoleGetUnknown(t *testing.T) {
	svc := setupRoleService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-snowflake")
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.Get(ctx, "123456789")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoleDeleteRemovesRow(t *testing.T) {
	svc := setupRoleService(t)
	ctx := context.Background()

	role, err := svc.Create(ctx, domain.CreateRequest{Name: "Temp"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, role.ID.String()))

	_, err = svc.Get(ctx, role.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
