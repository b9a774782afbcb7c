package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListBudgetFilter struct {
	ProjectID  snowflake.ID
	FiscalYear int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, budget *Budget) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*Budget, error)
	List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter ListBudgetFilter, page pagination.Pagination) ([]*Budget, error)
	UpdateFields(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) error

	// SumItemActuals returns the exact decimal sum of actual_amount over all
	// line items of (budgetID, companyID). An empty item set sums to zero.
	SumItemActuals(ctx context.Context, db *gorm.DB, companyID, budgetID snowflake.ID) (decimal.Decimal, error)

	// SetDerivedTotals persists used/remaining on the budget row scoped by
	// (budgetID, companyID).
	SetDerivedTotals(ctx context.Context, db *gorm.DB, companyID, budgetID snowflake.ID, used, remaining decimal.Decimal) error
}
