package domain

import (
	"context"
	"errors"
	"time"

	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type CreateProjectRequest struct {
	InvestigatorID string
	Title          string
	Code           string
	Description    string
	Status         string
	StartDate      *time.Time
	EndDate        *time.Time
	Metadata       map[string]any
}

type UpdateProjectRequest struct {
	ID             string
	InvestigatorID *string
	Title          *string
	Code           *string
	Description    *string
	Status         *string
	StartDate      *time.Time
	EndDate        *time.Time
	Metadata       map[string]any
}

type ListProjectRequest struct {
	PageToken      string
	PageSize       int32
	Status         string
	InvestigatorID string
}

type ListProjectResponse struct {
	pagination.PageInfo
	Projects []Project `json:"projects"`
}

type GetProjectRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateProjectRequest) (Project, error)
	List(context.Context, ListProjectRequest) (ListProjectResponse, error)
	GetByID(context.Context, GetProjectRequest) (Project, error)
	Update(context.Context, UpdateProjectRequest) (Project, error)
	Delete(context.Context, GetProjectRequest) error
}

var (
	ErrInvalidCompany      = errors.New("invalid_company")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidInvestigator = errors.New("invalid_investigator")
	ErrInvalidTitle        = errors.New("invalid_title")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidDateRange    = errors.New("invalid_date_range")
	ErrNotFound            = errors.New("not_found")
)
