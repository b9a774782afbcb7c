package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListBudgetItemFilter struct {
	BudgetID snowflake.ID
	Status   string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *BudgetItem) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*BudgetItem, error)
	List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter ListBudgetItemFilter, page pagination.Pagination) ([]*BudgetItem, error)
	UpdateFields(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) error
}
