package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	budgetdomain "github.com/nextlab/researchdesk/internal/budget/domain"
	"github.com/nextlab/researchdesk/internal/dashboard/domain"
	investigatordomain "github.com/nextlab/researchdesk/internal/investigator/domain"
	milestonedomain "github.com/nextlab/researchdesk/internal/milestone/domain"
	organizationdomain "github.com/nextlab/researchdesk/internal/organization/domain"
	projectdomain "github.com/nextlab/researchdesk/internal/project/domain"
	researcherdomain "github.com/nextlab/researchdesk/internal/researcher/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDashboardService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&projectdomain.Project{},
		&organizationdomain.Organization{},
		&investigatordomain.Investigator{},
		&researcherdomain.Researcher{},
		&milestonedomain.Milestone{},
		&budgetdomain.Budget{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:  db,
		Log: zap.NewNop(),
	})
	return svc, db, node
}

func TestOverviewAggregatesCompanyData(t *testing.T) {
	svc, db, node := setupDashboardService(t)
	companyID := node.Generate()
	otherCompany := node.Generate()
	now := time.Now().UTC()

	for _, status := range []string{projectdomain.StatusActive, projectdomain.StatusActive, projectdomain.StatusCompleted} {
		require.NoError(t, db.Create(&projectdomain.Project{
			ID:        node.Generate(),
			CompanyID: companyID,
			Title:     "p",
			Status:    status,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error)
	}
	// Another tenant's project must never be counted.
	require.NoError(t, db.Create(&projectdomain.Project{
		ID:        node.Generate(),
		CompanyID: otherCompany,
		Title:     "q",
		Status:    projectdomain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)

	require.NoError(t, db.Create(&organizationdomain.Organization{
		ID: node.Generate(), CompanyID: companyID, Name: "org", CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&investigatordomain.Investigator{
		ID: node.Generate(), CompanyID: companyID, Name: "pi", CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&researcherdomain.Researcher{
		ID: node.Generate(), CompanyID: companyID, Name: "rs", CreatedAt: now, UpdatedAt: now,
	}).Error)

	require.NoError(t, db.Create(&milestonedomain.Milestone{
		ID: node.Generate(), CompanyID: companyID, ProjectID: node.Generate(),
		Title: "open", Done: false, CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&milestonedomain.Milestone{
		ID: node.Generate(), CompanyID: companyID, ProjectID: node.Generate(),
		Title: "done", Done: true, CreatedAt: now, UpdatedAt: now,
	}).Error)

	for _, amounts := range [][3]string{
		{"1000.00", "400.00", "600.00"},
		{"500.50", "100.25", "400.25"},
	} {
		require.NoError(t, db.Create(&budgetdomain.Budget{
			ID:              node.Generate(),
			CompanyID:       companyID,
			ProjectID:       node.Generate(),
			FiscalYear:      2026,
			TotalBudget:     decimal.RequireFromString(amounts[0]),
			UsedBudget:      decimal.RequireFromString(amounts[1]),
			RemainingBudget: decimal.RequireFromString(amounts[2]),
			CreatedAt:       now,
			UpdatedAt:       now,
		}).Error)
	}

	ctx := tenantctx.WithCompanyID(context.Background(), companyID)
	overview, err := svc.Overview(ctx)
	require.NoError(t, err)

	require.EqualValues(t, 3, overview.Projects)
	require.EqualValues(t, 2, overview.ProjectsByStatus[projectdomain.StatusActive])
	require.EqualValues(t, 1, overview.ProjectsByStatus[projectdomain.StatusCompleted])
	require.EqualValues(t, 1, overview.Organizations)
	require.EqualValues(t, 1, overview.Investigators)
	require.EqualValues(t, 1, overview.Researchers)
	require.EqualValues(t, 1, overview.OpenMilestones)
	require.True(t, overview.Budget.TotalBudget.Equal(decimal.RequireFromString("1500.50")))
	require.True(t, overview.Budget.UsedBudget.Equal(decimal.RequireFromString("500.25")))
	require.True(t, overview.Budget.RemainingBudget.Equal(decimal.RequireFromString("1000.25")))
}

func TestOverviewEmptyCompany(t *testing.T) {
	svc, _, node := setupDashboardService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.Zero(t, overview.Projects)
	require.Empty(t, overview.ProjectsByStatus)
	require.True(t, overview.Budget.TotalBudget.IsZero())
	require.True(t, overview.Budget.RemainingBudget.IsZero())
}
