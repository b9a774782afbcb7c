// Package domain contains persistence models for participating organizations.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Organization types.
const (
	TypeUniversity = "university"
	TypeCompany    = "company"
	TypeInstitute  = "institute"
	TypeGovernment = "government"
)

type Organization struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	CompanyID    snowflake.ID   `gorm:"not null;index" json:"company_id"`
	Name         string         `gorm:"type:text;not null" json:"name"`
	Code         string         `gorm:"type:text;not null;default:''" json:"code"`
	Type         string         `gorm:"type:text;not null;default:''" json:"type"`
	ContactEmail string         `gorm:"type:text;not null;default:''" json:"contact_email"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }
