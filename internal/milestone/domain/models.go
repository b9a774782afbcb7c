// Package domain contains persistence models for project milestones.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Milestone struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID `gorm:"not null;index" json:"company_id"`
	ProjectID snowflake.ID `gorm:"not null;index" json:"project_id"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	DueDate   *time.Time   `json:"due_date,omitempty"`
	Done      bool         `gorm:"not null;default:false" json:"done"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Milestone) TableName() string { return "milestones" }
