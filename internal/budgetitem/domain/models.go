// Package domain contains persistence models for budget line items.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Item statuses.
const (
	StatusPlanned  = "planned"
	StatusExecuted = "executed"
)

// BudgetItem is one line of spend inside a budget. PlannedAmount is the
// forecast; ActualAmount is what was actually spent and is what budget
// aggregation sums over.
type BudgetItem struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	CompanyID     snowflake.ID    `gorm:"not null;index" json:"company_id"`
	BudgetID      snowflake.ID    `gorm:"not null;index" json:"budget_id"`
	CategoryID    snowflake.ID    `gorm:"index" json:"category_id"`
	ItemName      string          `gorm:"type:text;not null" json:"item_name"`
	PlannedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"planned_amount"`
	ActualAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"actual_amount"`
	Status        string          `gorm:"type:text;not null;default:'planned'" json:"status"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (BudgetItem) TableName() string { return "budget_items" }
