// Package domain contains persistence models for project consortia: the
// organizations and people attached to a project with a role.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Consortium roles.
const (
	RoleLead          = "lead"
	RolePartner       = "partner"
	RoleSubcontractor = "subcontractor"
)

type ConsortiumOrganization struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID      snowflake.ID `gorm:"not null;index;uniqueIndex:ux_consortium_project_org" json:"company_id"`
	ProjectID      snowflake.ID `gorm:"not null;index;uniqueIndex:ux_consortium_project_org" json:"project_id"`
	OrganizationID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_consortium_project_org" json:"organization_id"`
	Role           string       `gorm:"type:text;not null;default:'partner'" json:"role"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (ConsortiumOrganization) TableName() string { return "consortium_organizations" }

type ConsortiumMember struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_consortium_project_member" json:"company_id"`
	ProjectID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_consortium_project_member" json:"project_id"`
	ResearcherID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_consortium_project_member" json:"researcher_id"`
	Role         string       `gorm:"type:text;not null;default:''" json:"role"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (ConsortiumMember) TableName() string { return "consortium_members" }

// ValidRole reports whether value is a known consortium organization role.
func ValidRole(value string) bool {
	switch value {
	case RoleLead, RolePartner, RoleSubcontractor:
		return true
	}
	return false
}
