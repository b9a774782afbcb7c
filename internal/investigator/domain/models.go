// Package domain contains persistence models for principal investigators.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Investigator struct {
	ID             snowflake.ID   `gorm:"primaryKey" json:"id"`
	CompanyID      snowflake.ID   `gorm:"not null;index" json:"company_id"`
	OrganizationID snowflake.ID   `gorm:"index" json:"organization_id"`
	Name           string         `gorm:"type:text;not null" json:"name"`
	Email          string         `gorm:"type:text;not null;default:''" json:"email"`
	Specialty      string         `gorm:"type:text;not null;default:''" json:"specialty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Investigator) TableName() string { return "investigators" }
