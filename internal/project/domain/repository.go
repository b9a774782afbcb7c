package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListProjectFilter struct {
	Status         string
	InvestigatorID snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, project *Project) error
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*Project, error)
	List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter ListProjectFilter, page pagination.Pagination) ([]*Project, error)
	UpdateFields(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) error
}
