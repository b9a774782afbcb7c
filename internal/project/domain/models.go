// Package domain contains persistence models for research projects.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project statuses.
const (
	StatusPreparing = "preparing"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusSuspended = "suspended"
)

type Project struct {
	ID             snowflake.ID   `gorm:"primaryKey" json:"id"`
	CompanyID      snowflake.ID   `gorm:"not null;index" json:"company_id"`
	InvestigatorID snowflake.ID   `gorm:"index" json:"investigator_id"`
	Title          string         `gorm:"type:text;not null" json:"title"`
	Code           string         `gorm:"type:text;not null;default:''" json:"code"`
	Description    string         `gorm:"type:text;not null;default:''" json:"description"`
	Status         string         `gorm:"type:text;not null;default:'preparing'" json:"status"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	// Metadata holds free-form project attributes such as funding agency or
	// grant number.
	Metadata datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Project) TableName() string { return "projects" }

// ValidStatus reports whether value is a known project status.
func ValidStatus(value string) bool {
	switch value {
	case StatusPreparing, StatusActive, StatusCompleted, StatusSuspended:
		return true
	}
	return false
}
