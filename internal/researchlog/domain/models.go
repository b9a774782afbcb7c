// Package domain contains persistence models for daily research logs.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type ResearchLog struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID `gorm:"not null;index" json:"company_id"`
	ProjectID snowflake.ID `gorm:"not null;index" json:"project_id"`
	MemberID  snowflake.ID `gorm:"not null;index" json:"member_id"`
	LogDate   time.Time    `gorm:"not null;index" json:"log_date"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (ResearchLog) TableName() string { return "research_logs" }
