package domain

import (
	"context"
	"errors"

	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type CreateInvestigatorRequest struct {
	OrganizationID string
	Name           string
	Email          string
	Specialty      string
}

type UpdateInvestigatorRequest struct {
	ID             string
	OrganizationID *string
	Name           *string
	Email          *string
	Specialty      *string
}

type ListInvestigatorRequest struct {
	PageToken      string
	PageSize       int32
	OrganizationID string
}

type ListInvestigatorResponse struct {
	pagination.PageInfo
	Investigators []Investigator `json:"investigators"`
}

type GetInvestigatorRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateInvestigatorRequest) (Investigator, error)
	List(context.Context, ListInvestigatorRequest) (ListInvestigatorResponse, error)
	GetByID(context.Context, GetInvestigatorRequest) (Investigator, error)
	Update(context.Context, UpdateInvestigatorRequest) (Investigator, error)
	Delete(context.Context, GetInvestigatorRequest) error
}

var (
	ErrInvalidCompany      = errors.New("invalid_company")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrNotFound            = errors.New("not_found")
)
