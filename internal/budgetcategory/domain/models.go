// Package domain contains persistence models for budget item categories.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type BudgetCategory struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID `gorm:"not null;index" json:"company_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	SortOrder int          `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (BudgetCategory) TableName() string { return "budget_categories" }
