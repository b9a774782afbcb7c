package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nextlab/researchdesk/internal/organization/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupOrganizationService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Organization{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	})
	return svc, db, node
}

func TestDeleteOrganizationIsSoft(t *testing.T) {
	svc, db, node := setupOrganizationService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	created, err := svc.Create(ctx, domain.CreateOrganizationRequest{
		Name: "Aalen Institute",
		Type: domain.TypeInstitute,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, domain.GetOrganizationRequest{ID: created.ID.String()}))

	_, err = svc.GetByID(ctx, domain.GetOrganizationRequest{ID: created.ID.String()})
	require.ErrorIs(t, err, domain.ErrNotFound)

	resp, err := svc.List(ctx, domain.ListOrganizationRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Organizations)

	// The row survives; only the visibility changes.
	var count int64
	require.NoError(t, db.Unscoped().
		Model(&domain.Organization{}).
		Where("id = ?", created.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreateOrganizationRejectsUnknownType(t *testing.T) {
	svc, _, node := setupOrganizationService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	_, err := svc.Create(ctx, domain.CreateOrganizationRequest{
		Name: "Unknown",
		Type: "laboratory",
	})
	require.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestListOrganizationsScopedToCompany(t *testing.T) {
	svc, _, node := setupOrganizationService(t)
	ctxA := tenantctx.WithCompanyID(context.Background(), node.Generate())
	ctxB := tenantctx.WithCompanyID(context.Background(), node.Generate())

	_, err := svc.Create(ctxA, domain.CreateOrganizationRequest{Name: "Alpha", Type: domain.TypeUniversity})
	require.NoError(t, err)
	_, err = svc.Create(ctxB, domain.CreateOrganizationRequest{Name: "Beta", Type: domain.TypeCompany})
	require.NoError(t, err)

	resp, err := svc.List(ctxA, domain.ListOrganizationRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Organizations, 1)
	require.Equal(t, "Alpha", resp.Organizations[0].Name)
}
