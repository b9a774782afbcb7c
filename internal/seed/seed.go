// Package seed bootstraps default reference data for a fresh installation.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	budgetcategorydomain "github.com/nextlab/researchdesk/internal/budgetcategory/domain"
	"gorm.io/gorm"
)

// demoCompanyID is the tenant seeded for local development so the API is
// usable before any real session issuer exists.
const demoCompanyID snowflake.ID = 1

var defaultCategories = []string{
	"Personnel",
	"Equipment",
	"Travel",
	"Materials",
	"Outsourcing",
	"Other",
}

// EnsureDemoTenant seeds the demo company's budget category vocabulary.
// Schedule types are seeded lazily on first read, so they are not handled
// here. Safe to call on every startup.
func EnsureDemoTenant(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ensureBudgetCategoriesTx(ctx, tx, node, demoCompanyID)
	})
}

func ensureBudgetCategoriesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, companyID snowflake.ID) error {
	var count int64
	err := tx.WithContext(ctx).
		Model(&budgetcategorydomain.BudgetCategory{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	categories := make([]budgetcategorydomain.BudgetCategory, 0, len(defaultCategories))
	for i, name := range defaultCategories {
		categories = append(categories, budgetcategorydomain.BudgetCategory{
			ID:        node.Generate(),
			CompanyID: companyID,
			Name:      name,
			SortOrder: i + 1,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return tx.WithContext(ctx).Create(&categories).Error
}
