package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/budget/domain"
	"github.com/nextlab/researchdesk/pkg/db/option"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, budget *domain.Budget) error {
	return db.WithContext(ctx).Create(budget).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*domain.Budget, error) {
	var budget domain.Budget
	err := db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&budget).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &budget, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter domain.ListBudgetFilter, page pagination.Pagination) ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	stmt := db.WithContext(ctx).
		Model(&domain.Budget{}).
		Where("company_id = ?", companyID)
	if filter.ProjectID != 0 {
		stmt = stmt.Where("project_id = ?", filter.ProjectID)
	}
	if filter.FiscalYear != 0 {
		stmt = stmt.Where("fiscal_year = ?", filter.FiscalYear)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Budget{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.Budget{}).Error
}

func (r *repo) SumItemActuals(ctx context.Context, db *gorm.DB, companyID, budgetID snowflake.ID) (decimal.Decimal, error) {
	// Amounts are summed in Go rather than SQL so the arithmetic stays exact
	// decimal math on every dialect.
	var amounts []decimal.Decimal
	err := db.WithContext(ctx).
		Table("budget_items").
		Where("company_id = ? AND budget_id = ?", companyID, budgetID).
		Pluck("actual_amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, amount := range amounts {
		sum = sum.Add(amount)
	}
	return sum, nil
}

func (r *repo) SetDerivedTotals(ctx context.Context, db *gorm.DB, companyID, budgetID snowflake.ID, used, remaining decimal.Decimal) error {
	return db.WithContext(ctx).
		Model(&domain.Budget{}).
		Where("company_id = ? AND id = ?", companyID, budgetID).
		Updates(map[string]any{
			"used_budget":      used,
			"remaining_budget": remaining,
			"updated_at":       time.Now().UTC(),
		}).Error
}
