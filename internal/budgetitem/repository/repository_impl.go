package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/budgetitem/domain"
	"github.com/nextlab/researchdesk/pkg/db/option"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.BudgetItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*domain.BudgetItem, error) {
	var item domain.BudgetItem
	err := db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter domain.ListBudgetItemFilter, page pagination.Pagination) ([]*domain.BudgetItem, error) {
	var items []*domain.BudgetItem
	stmt := db.WithContext(ctx).
		Model(&domain.BudgetItem{}).
		Where("company_id = ?", companyID)
	if filter.BudgetID != 0 {
		stmt = stmt.Where("budget_id = ?", filter.BudgetID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.BudgetItem{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.BudgetItem{}).Error
}
