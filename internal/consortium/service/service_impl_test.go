package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nextlab/researchdesk/internal/consortium/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupConsortiumService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&domain.ConsortiumOrganization{}, &domain.ConsortiumMember{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	})
	return svc, node
}

func TestAddOrganizationRejectsDuplicate(t *testing.T) {
	svc, node := setupConsortiumService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())
	projectID := node.Generate().String()
	orgID := node.Generate().String()

	_, err := svc.AddOrganization(ctx, domain.AddOrganizationRequest{
		ProjectID:      projectID,
		OrganizationID: orgID,
		Role:           domain.RoleLead,
	})
	require.NoError(t, err)

	_, err = svc.AddOrganization(ctx, domain.AddOrganizationRequest{
		ProjectID:      projectID,
		OrganizationID: orgID,
		Role:           domain.RolePartner,
	})
	require.ErrorIs(t, err, domain.ErrAlreadyAttached)
}

func TestAddOrganizationRejectsUnknownRole(t *testing.T) {
	svc, node := setupConsortiumService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	_, err := svc.AddOrganization(ctx, domain.AddOrganizationRequest{
		ProjectID:      node.Generate().String(),
		OrganizationID: node.Generate().String(),
		Role:           "observer",
	})
	require.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestListReturnsBothSides(t *testing.T) {
	svc, node := setupConsortiumService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())
	projectID := node.Generate().String()

	_, err := svc.AddOrganization(ctx, domain.AddOrganizationRequest{
		ProjectID:      projectID,
		OrganizationID: node.Generate().String(),
		Role:           domain.RoleLead,
	})
	require.NoError(t, err)

	_, err = svc.AddMember(ctx, domain.AddMemberRequest{
		ProjectID:    projectID,
		ResearcherID: node.Generate().String(),
		Role:         "data analysis",
	})
	require.NoError(t, err)

	resp, err := svc.List(ctx, domain.ListConsortiumRequest{ProjectID: projectID})
	require.NoError(t, err)
	require.Len(t, resp.Organizations, 1)
	require.Len(t, resp.Members, 1)
	require.Equal(t, domain.RoleLead, resp.Organizations[0].Role)
}

func TestRemoveMember(t *testing.T) {
	svc, node := setupConsortiumService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())
	projectID := node.Generate().String()

	member, err := svc.AddMember(ctx, domain.AddMemberRequest{
		ProjectID:    projectID,
		ResearcherID: node.Generate().String(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(ctx, domain.RemoveRequest{ID: member.ID.String()}))

	resp, err := svc.List(ctx, domain.ListConsortiumRequest{ProjectID: projectID})
	require.NoError(t, err)
	require.Empty(t, resp.Members)

	err = svc.RemoveMember(ctx, domain.RemoveRequest{ID: member.ID.String()})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
