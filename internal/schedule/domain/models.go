// Package domain contains persistence models for the project calendar.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ScheduleType is a per-company vocabulary of calendar entry kinds. A company
// with no types gets the default set seeded on first read.
type ScheduleType struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID `gorm:"not null;index" json:"company_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Color     string       `gorm:"type:text;not null;default:''" json:"color"`
	SortOrder int          `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (ScheduleType) TableName() string { return "schedule_types" }

type Schedule struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID `gorm:"not null;index" json:"company_id"`
	ProjectID snowflake.ID `gorm:"index" json:"project_id"`
	TypeID    snowflake.ID `gorm:"index" json:"type_id"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	StartsAt  time.Time    `gorm:"not null;index" json:"starts_at"`
	EndsAt    *time.Time   `json:"ends_at,omitempty"`
	Location  string       `gorm:"type:text;not null;default:''" json:"location"`
	Notes     string       `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Schedule) TableName() string { return "schedules" }
