// Package domain contains persistence models for company announcements.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Announcement struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID `gorm:"not null;index" json:"company_id"`
	AuthorID  snowflake.ID `gorm:"not null" json:"author_id"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	Body      string       `gorm:"type:text;not null;default:''" json:"body"`
	Pinned    bool         `gorm:"not null;default:false" json:"pinned"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Announcement) TableName() string { return "announcements" }
