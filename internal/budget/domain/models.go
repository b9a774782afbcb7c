// Package domain contains persistence models for project budgets.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Budget is a project-scoped monetary allocation. TotalBudget is declared by
// a user; UsedBudget and RemainingBudget are derived from the budget's line
// items and must satisfy remaining == total - used after every recompute.
type Budget struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	CompanyID       snowflake.ID    `gorm:"not null;index" json:"company_id"`
	ProjectID       snowflake.ID    `gorm:"not null;index" json:"project_id"`
	FiscalYear      int             `gorm:"not null" json:"fiscal_year"`
	TotalBudget     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_budget"`
	UsedBudget      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"used_budget"`
	RemainingBudget decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"remaining_budget"`
	Status          string          `gorm:"type:text;not null;default:''" json:"status"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Budget) TableName() string { return "budgets" }
