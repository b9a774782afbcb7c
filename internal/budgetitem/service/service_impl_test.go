package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	budgetdomain "github.com/nextlab/researchdesk/internal/budget/domain"
	budgetrepository "github.com/nextlab/researchdesk/internal/budget/repository"
	budgetservice "github.com/nextlab/researchdesk/internal/budget/service"
	"github.com/nextlab/researchdesk/internal/budgetitem/domain"
	"github.com/nextlab/researchdesk/internal/budgetitem/repository"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupItemService(t *testing.T) (domain.Service, budgetdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&budgetdomain.Budget{}, &domain.BudgetItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	budgets := budgetservice.New(budgetservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  budgetrepository.Provide(),
	})
	items := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    repository.Provide(),
		Budgets: budgets,
	})
	return items, budgets, db, node
}

func createBudget(t *testing.T, ctx context.Context, budgets budgetdomain.Service, node *snowflake.Node, total string) budgetdomain.Budget {
	t.Helper()
	budget, err := budgets.Create(ctx, budgetdomain.CreateBudgetRequest{
		ProjectID:   node.Generate().String(),
		FiscalYear:  2026,
		TotalBudget: decimal.RequireFromString(total),
	})
	require.NoError(t, err)
	return budget
}

func budgetTotals(t *testing.T, ctx context.Context, budgets budgetdomain.Service, id snowflake.ID) (used, remaining decimal.Decimal) {
	t.Helper()
	budget, err := budgets.GetByID(ctx, budgetdomain.GetBudgetRequest{ID: id.String()})
	require.NoError(t, err)
	return budget.UsedBudget, budget.RemainingBudget
}

func TestCreateItemUpdatesBudgetTotals(t *testing.T) {
	items, budgets, _, node := setupItemService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	budget := createBudget(t, ctx, budgets, node, "1000000.00")

	equipment := decimal.RequireFromString("300000.00")
	_, err := items.Create(ctx, domain.CreateBudgetItemRequest{
		BudgetID:      budget.ID.String(),
		CategoryID:    node.Generate().String(),
		ItemName:      "equipment",
		PlannedAmount: equipment,
		ActualAmount:  &equipment,
		Status:        domain.StatusExecuted,
	})
	require.NoError(t, err)

	personnel := decimal.RequireFromString("700000.00")
	_, err = items.Create(ctx, domain.CreateBudgetItemRequest{
		BudgetID:      budget.ID.String(),
		CategoryID:    node.Generate().String(),
		ItemName:      "personnel",
		PlannedAmount: personnel,
		ActualAmount:  &personnel,
		Status:        domain.StatusExecuted,
	})
	require.NoError(t, err)

	used, remaining := budgetTotals(t, ctx, budgets, budget.ID)
	require.True(t, used.Equal(decimal.RequireFromString("1000000.00")), "used = %s", used)
	require.True(t, remaining.IsZero(), "remaining = %s", remaining)
}

func TestCreateItemDefaults(t *testing.T) {
	items, budgets, _, node := setupItemService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	budget := createBudget(t, ctx, budgets, node, "500.00")

	created, err := items.Create(ctx, domain.CreateBudgetItemRequest{
		BudgetID:      budget.ID.String(),
		CategoryID:    node.Generate().String(),
		ItemName:      "travel",
		PlannedAmount: decimal.RequireFromString("120.00"),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPlanned, created.Status)
	require.True(t, created.ActualAmount.IsZero())

	used, remaining := budgetTotals(t, ctx, budgets, budget.ID)
	require.True(t, used.IsZero())
	require.True(t, remaining.Equal(decimal.RequireFromString("500.00")))
}

func TestCreateItemUnknownBudget(t *testing.T) {
	items, _, _, node := setupItemService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	_, err := items.Create(ctx, domain.CreateBudgetItemRequest{
		BudgetID:      node.Generate().String(),
		CategoryID:    node.Generate().String(),
		ItemName:      "materials",
		PlannedAmount: decimal.RequireFromString("10.00"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidBudget)
}

func TestCreateItemRequiresCategory(t *testing.T) {
	items, budgets, _, node := setupItemService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	budget := createBudget(t, ctx, budgets, node, "100.00")

	_, err := items.Create(ctx, domain.CreateBudgetItemRequest{
		BudgetID:      budget.ID.String(),
		ItemName:      "materials",
		PlannedAmount: decimal.RequireFromString("10.00"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestUpdateItemActualRecomputes(t *testing.T) {
	items, budgets, _, node := setupItemService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	budget := createBudget(t, ctx, budgets, node, "1000.00")

	actual := decimal.RequireFromString("100.00")
	created, err := items.Create(ctx, domain.CreateBudgetItemRequest{
		BudgetID:      budget.ID.String(),
		CategoryID:    node.Generate().String(),
		ItemName:      "materials",
		PlannedAmount: actual,
		ActualAmount:  &actual,
	})
	require.NoError(t, err)

	revised := decimal.RequireFromString("350.00")
	status := domain.StatusExecuted
	_, err = items.Update(ctx, domain.UpdateBudgetItemRequest{
		ID:           created.ID.String(),
		ActualAmount: &revised,
		Status:       &status,
	})
	require.NoError(t, err)

	used, remaining := budgetTotals(t, ctx, budgets, budget.ID)
	require.True(t, used.Equal(revised), "used = %s", used)
	require.True(t, remaining.Equal(decimal.RequireFromString("650.00")), "remaining = %s", remaining)
}

func TestDeleteItemRecomputes(t *testing.T) {
	items, budgets, _, node := setupItemService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	budget := createBudget(t, ctx, budgets, node, "1000.00")

	keepAmount := decimal.RequireFromString("200.00")
	_, err := items.Create(ctx, domain.CreateBudgetItemRequest{
		BudgetID:      budget.ID.String(),
		CategoryID:    node.Generate().String(),
		ItemName:      "keep",
		PlannedAmount: keepAmount,
		ActualAmount:  &keepAmount,
	})
	require.NoError(t, err)

	dropAmount := decimal.RequireFromString("300.00")
	dropped, err := items.Create(ctx, domain.CreateBudgetItemRequest{
		BudgetID:      budget.ID.String(),
		CategoryID:    node.Generate().String(),
		ItemName:      "drop",
		PlannedAmount: dropAmount,
		ActualAmount:  &dropAmount,
	})
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, domain.GetBudgetItemRequest{ID: dropped.ID.String()}))

	used, remaining := budgetTotals(t, ctx, budgets, budget.ID)
	require.True(t, used.Equal(keepAmount), "used = %s", used)
	require.True(t, remaining.Equal(decimal.RequireFromString("800.00")), "remaining = %s", remaining)
}

func TestUpdateItemRejectsNegativeActual(t *testing.T) {
	items, budgets, _, node := setupItemService(t)
	ctx := tenantctx.WithCompanyID(context.Background(), node.Generate())

	budget := createBudget(t, ctx, budgets, node, "100.00")

	created, err := items.Create(ctx, domain.CreateBudgetItemRequest{
		BudgetID:      budget.ID.String(),
		CategoryID:    node.Generate().String(),
		ItemName:      "supplies",
		PlannedAmount: decimal.RequireFromString("50.00"),
	})
	require.NoError(t, err)

	negative := decimal.RequireFromString("-10.00")
	_, err = items.Update(ctx, domain.UpdateBudgetItemRequest{
		ID:           created.ID.String(),
		ActualAmount: &negative,
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}
