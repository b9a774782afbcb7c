package domain

import (
	"context"
	"errors"

	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type CreateResearcherRequest struct {
	OrganizationID string
	ProjectID      string
	Name           string
	Email          string
	Position       string
}

type UpdateResearcherRequest struct {
	ID             string
	OrganizationID *string
	ProjectID      *string
	Name           *string
	Email          *string
	Position       *string
}

type ListResearcherRequest struct {
	PageToken string
	PageSize  int32
	ProjectID string
}

type ListResearcherResponse struct {
	pagination.PageInfo
	Researchers []Researcher `json:"researchers"`
}

type GetResearcherRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateResearcherRequest) (Researcher, error)
	List(context.Context, ListResearcherRequest) (ListResearcherResponse, error)
	GetByID(context.Context, GetResearcherRequest) (Researcher, error)
	Update(context.Context, UpdateResearcherRequest) (Researcher, error)
	Delete(context.Context, GetResearcherRequest) error
}

var (
	ErrInvalidCompany      = errors.New("invalid_company")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidProject      = errors.New("invalid_project")
	ErrInvalidName         = errors.New("invalid_name")
	ErrNotFound            = errors.New("not_found")
)
