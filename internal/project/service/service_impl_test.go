package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nextlab/researchdesk/internal/project/domain"
	"github.com/nextlab/researchdesk/internal/project/repository"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupProjectService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Project{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, node
}

func TestCreateProjectDefaultsToPreparing(t *testing.T) {
	svc, node := setupProjectService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	created, err := svc.Create(ctx, domain.CreateProjectRequest{
		Title: "Coastal erosion study",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPreparing, created.Status)
}

func TestProjectMetadataRoundTrips(t *testing.T) {
	svc, node := setupProjectService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	created, err := svc.Create(ctx, domain.CreateProjectRequest{
		Title: "Funded study",
		Metadata: map[string]any{
			"funding_agency": "NSF",
			"grant_number":   "2026-0142",
		},
	})
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, domain.GetProjectRequest{ID: created.ID.String()})
	require.NoError(t, err)
	require.Equal(t, "NSF", fetched.Metadata["funding_agency"])
	require.Equal(t, "2026-0142", fetched.Metadata["grant_number"])
}

func TestCreateProjectRejectsInvertedDates(t *testing.T) {
	svc, node := setupProjectService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	_, err := svc.Create(ctx, domain.CreateProjectRequest{
		Title:     "Backwards",
		StartDate: &start,
		EndDate:   &end,
	})
	require.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestUpdateProjectValidatesMergedDates(t *testing.T) {
	svc, node := setupProjectService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	created, err := svc.Create(ctx, domain.CreateProjectRequest{
		Title:     "Multi-year",
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	// A new end date before the stored start date must be rejected.
	badEnd := start.AddDate(0, -2, 0)
	_, err = svc.Update(ctx, domain.UpdateProjectRequest{
		ID:      created.ID.String(),
		EndDate: &badEnd,
	})
	require.ErrorIs(t, err, domain.ErrInvalidDateRange)

	goodEnd := start.AddDate(2, 0, 0)
	updated, err := svc.Update(ctx, domain.UpdateProjectRequest{
		ID:      created.ID.String(),
		EndDate: &goodEnd,
	})
	require.NoError(t, err)
	require.True(t, updated.EndDate.Equal(goodEnd))
}

func TestUpdateProjectRejectsUnknownStatus(t *testing.T) {
	svc, node := setupProjectService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	created, err := svc.Create(ctx, domain.CreateProjectRequest{Title: "Status check"})
	require.NoError(t, err)

	bad := "archived"
	_, err = svc.Update(ctx, domain.UpdateProjectRequest{
		ID:     created.ID.String(),
		Status: &bad,
	})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestListProjectsFiltersByStatus(t *testing.T) {
	svc, node := setupProjectService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	active := domain.StatusActive
	for _, title := range []string{"one", "two"} {
		created, err := svc.Create(ctx, domain.CreateProjectRequest{Title: title})
		require.NoError(t, err)
		_, err = svc.Update(ctx, domain.UpdateProjectRequest{ID: created.ID.String(), Status: &active})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, domain.CreateProjectRequest{Title: "three"})
	require.NoError(t, err)

	resp, err := svc.List(ctx, domain.ListProjectRequest{Status: domain.StatusActive})
	require.NoError(t, err)
	require.Len(t, resp.Projects, 2)
}
