// Package domain contains persistence models for project KPIs.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type KPI struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	CompanyID    snowflake.ID    `gorm:"not null;index" json:"company_id"`
	ProjectID    snowflake.ID    `gorm:"not null;index" json:"project_id"`
	Name         string          `gorm:"type:text;not null" json:"name"`
	Unit         string          `gorm:"type:text;not null;default:''" json:"unit"`
	TargetValue  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"target_value"`
	CurrentValue decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"current_value"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (KPI) TableName() string { return "kpis" }
