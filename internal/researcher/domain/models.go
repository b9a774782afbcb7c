// Package domain contains persistence models for research staff.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Researcher struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID      snowflake.ID `gorm:"not null;index" json:"company_id"`
	OrganizationID snowflake.ID `gorm:"index" json:"organization_id"`
	ProjectID      snowflake.ID `gorm:"index" json:"project_id"`
	Name           string       `gorm:"type:text;not null" json:"name"`
	Email          string       `gorm:"type:text;not null;default:''" json:"email"`
	Position       string       `gorm:"type:text;not null;default:''" json:"position"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Researcher) TableName() string { return "researchers" }
