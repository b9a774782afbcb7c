package domain

import (
	"context"
	"errors"

	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type CreateOrganizationRequest struct {
	Name         string
	Code         string
	Type         string
	ContactEmail string
}

type UpdateOrganizationRequest struct {
	ID           string
	Name         *string
	Code         *string
	Type         *string
	ContactEmail *string
}

type ListOrganizationRequest struct {
	PageToken string
	PageSize  int32
	Type      string
}

type ListOrganizationResponse struct {
	pagination.PageInfo
	Organizations []Organization `json:"organizations"`
}

type GetOrganizationRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateOrganizationRequest) (Organization, error)
	List(context.Context, ListOrganizationRequest) (ListOrganizationResponse, error)
	GetByID(context.Context, GetOrganizationRequest) (Organization, error)
	Update(context.Context, UpdateOrganizationRequest) (Organization, error)
	Delete(context.Context, GetOrganizationRequest) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidType    = errors.New("invalid_type")
	ErrNotFound       = errors.New("not_found")
)
