package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nextlab/researchdesk/internal/budget/domain"
	"github.com/nextlab/researchdesk/internal/budget/repository"
	budgetitemdomain "github.com/nextlab/researchdesk/internal/budgetitem/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupBudgetService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Budget{}, &budgetitemdomain.BudgetItem{}))

	node := mustNode(t)
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db, node
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func seedBudget(t *testing.T, db *gorm.DB, node *snowflake.Node, companyID snowflake.ID, total string) domain.Budget {
	t.Helper()
	now := time.Now().UTC()
	budget := domain.Budget{
		ID:              node.Generate(),
		CompanyID:       companyID,
		ProjectID:       node.Generate(),
		FiscalYear:      2026,
		TotalBudget:     decimal.RequireFromString(total),
		UsedBudget:      decimal.Zero,
		RemainingBudget: decimal.RequireFromString(total),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, db.Create(&budget).Error)
	return budget
}

func seedItem(t *testing.T, db *gorm.DB, node *snowflake.Node, companyID, budgetID snowflake.ID, actual string) budgetitemdomain.BudgetItem {
	t.Helper()
	now := time.Now().UTC()
	item := budgetitemdomain.BudgetItem{
		ID:            node.Generate(),
		CompanyID:     companyID,
		BudgetID:      budgetID,
		ItemName:      "item",
		PlannedAmount: decimal.Zero,
		ActualAmount:  decimal.RequireFromString(actual),
		Status:        budgetitemdomain.StatusExecuted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func fetchBudget(t *testing.T, db *gorm.DB, companyID, id snowflake.ID) domain.Budget {
	t.Helper()
	var budget domain.Budget
	require.NoError(t, db.Where("company_id = ? AND id = ?", companyID, id).Take(&budget).Error)
	return budget
}

func TestRecomputeSumsItemActuals(t *testing.T) {
	svc, db, node := setupBudgetService(t)
	companyID := node.Generate()

	budget := seedBudget(t, db, node, companyID, "10000.00")
	for _, amount := range []string{"1234.56", "0.01", "100.00", "9.99", "655.44"} {
		seedItem(t, db, node, companyID, budget.ID, amount)
	}

	svc.Recompute(context.Background(), budget.ID, companyID)

	got := fetchBudget(t, db, companyID, budget.ID)
	require.True(t, got.UsedBudget.Equal(decimal.RequireFromString("2000.00")),
		"used = %s", got.UsedBudget)
	require.True(t, got.RemainingBudget.Equal(decimal.RequireFromString("8000.00")),
		"remaining = %s", got.RemainingBudget)
}

func TestRecomputeEmptyItemSet(t *testing.T) {
	svc, db, node := setupBudgetService(t)
	companyID := node.Generate()

	budget := seedBudget(t, db, node, companyID, "500.00")
	// Leave a stale derived value behind to prove the recompute overwrites it.
	require.NoError(t, db.Model(&domain.Budget{}).
		Where("id = ?", budget.ID).
		Updates(map[string]any{"used_budget": decimal.RequireFromString("99.00")}).Error)

	svc.Recompute(context.Background(), budget.ID, companyID)

	got := fetchBudget(t, db, companyID, budget.ID)
	require.True(t, got.UsedBudget.IsZero(), "used = %s", got.UsedBudget)
	require.True(t, got.RemainingBudget.Equal(decimal.RequireFromString("500.00")))
}

func TestRecomputeNegativeRemaining(t *testing.T) {
	svc, db, node := setupBudgetService(t)
	companyID := node.Generate()

	budget := seedBudget(t, db, node, companyID, "100.00")
	seedItem(t, db, node, companyID, budget.ID, "150.00")

	svc.Recompute(context.Background(), budget.ID, companyID)

	got := fetchBudget(t, db, companyID, budget.ID)
	require.True(t, got.UsedBudget.Equal(decimal.RequireFromString("150.00")))
	require.True(t, got.RemainingBudget.Equal(decimal.RequireFromString("-50.00")),
		"remaining = %s", got.RemainingBudget)
}

func TestRecomputeIdempotent(t *testing.T) {
	svc, db, node := setupBudgetService(t)
	companyID := node.Generate()

	budget := seedBudget(t, db, node, companyID, "1000.00")
	seedItem(t, db, node, companyID, budget.ID, "250.00")

	ctx := context.Background()
	svc.Recompute(ctx, budget.ID, companyID)
	first := fetchBudget(t, db, companyID, budget.ID)
	svc.Recompute(ctx, budget.ID, companyID)
	second := fetchBudget(t, db, companyID, budget.ID)

	require.True(t, first.UsedBudget.Equal(second.UsedBudget))
	require.True(t, first.RemainingBudget.Equal(second.RemainingBudget))
	require.True(t, second.UsedBudget.Equal(decimal.RequireFromString("250.00")))
}

func TestRecomputeMissingBudgetIsNoop(t *testing.T) {
	svc, db, node := setupBudgetService(t)
	companyID := node.Generate()

	existing := seedBudget(t, db, node, companyID, "300.00")

	// Must not error, panic, or touch unrelated rows.
	svc.Recompute(context.Background(), node.Generate(), companyID)

	got := fetchBudget(t, db, companyID, existing.ID)
	require.True(t, got.UsedBudget.IsZero())
	require.True(t, got.RemainingBudget.Equal(decimal.RequireFromString("300.00")))
}

func TestRecomputeScopedToCompany(t *testing.T) {
	svc, db, node := setupBudgetService(t)
	companyA := node.Generate()
	companyB := node.Generate()

	budget := seedBudget(t, db, node, companyA, "1000.00")
	seedItem(t, db, node, companyA, budget.ID, "200.00")
	// Same budget ID, different tenant. Must never be summed.
	seedItem(t, db, node, companyB, budget.ID, "999.00")

	svc.Recompute(context.Background(), budget.ID, companyA)

	got := fetchBudget(t, db, companyA, budget.ID)
	require.True(t, got.UsedBudget.Equal(decimal.RequireFromString("200.00")),
		"used = %s", got.UsedBudget)
}

func TestUpdateTotalRederivesRemaining(t *testing.T) {
	svc, db, node := setupBudgetService(t)
	companyID := node.Generate()
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)

	budget := seedBudget(t, db, node, companyID, "1000.00")
	seedItem(t, db, node, companyID, budget.ID, "400.00")
	svc.Recompute(ctx, budget.ID, companyID)

	newTotal := decimal.RequireFromString("2000.00")
	updated, err := svc.Update(ctx, domain.UpdateBudgetRequest{
		ID:          budget.ID.String(),
		TotalBudget: &newTotal,
	})
	require.NoError(t, err)
	require.True(t, updated.UsedBudget.Equal(decimal.RequireFromString("400.00")))
	require.True(t, updated.RemainingBudget.Equal(decimal.RequireFromString("1600.00")),
		"remaining = %s", updated.RemainingBudget)
}

func TestDeleteRemovesItems(t *testing.T) {
	svc, db, node := setupBudgetService(t)
	companyID := node.Generate()
	ctx := tenantctx.WithCompanyID(context.Background(), companyID)

	budget := seedBudget(t, db, node, companyID, "1000.00")
	seedItem(t, db, node, companyID, budget.ID, "100.00")
	seedItem(t, db, node, companyID, budget.ID, "200.00")

	require.NoError(t, svc.Delete(ctx, domain.GetBudgetRequest{ID: budget.ID.String()}))

	var budgets int64
	require.NoError(t, db.Model(&domain.Budget{}).Where("id = ?", budget.ID).Count(&budgets).Error)
	require.Zero(t, budgets)

	var items int64
	require.NoError(t, db.Model(&budgetitemdomain.BudgetItem{}).Where("budget_id = ?", budget.ID).Count(&items).Error)
	require.Zero(t, items)
}

func TestCreateRejectsNegativeTotal(t *testing.T) {
	svc, _, node := setupBudgetService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	_, err := svc.Create(ctx, domain.CreateBudgetRequest{
		ProjectID:   node.Generate().String(),
		FiscalYear:  2026,
		TotalBudget: decimal.RequireFromString("-1.00"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCreateInitializesDerivedTotals(t *testing.T) {
	svc, _, node := setupBudgetService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	created, err := svc.Create(ctx, domain.CreateBudgetRequest{
		ProjectID:   node.Generate().String(),
		FiscalYear:  2026,
		TotalBudget: decimal.RequireFromString("750.50"),
	})
	require.NoError(t, err)
	require.True(t, created.UsedBudget.IsZero())
	require.True(t, created.RemainingBudget.Equal(decimal.RequireFromString("750.50")))
}
