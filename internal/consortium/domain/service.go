package domain

import (
	"context"
	"errors"
)

type AddOrganizationRequest struct {
	ProjectID      string
	OrganizationID string
	Role           string
}

type AddMemberRequest struct {
	ProjectID    string
	ResearcherID string
	Role         string
}

type ListConsortiumRequest struct {
	ProjectID string
}

type ListConsortiumResponse struct {
	Organizations []ConsortiumOrganization `json:"organizations"`
	Members       []ConsortiumMember       `json:"members"`
}

type RemoveRequest struct {
	ID string
}

type Service interface {
	AddOrganization(context.Context, AddOrganizationRequest) (ConsortiumOrganization, error)
	RemoveOrganization(context.Context, RemoveRequest) error
	AddMember(context.Context, AddMemberRequest) (ConsortiumMember, error)
	RemoveMember(context.Context, RemoveRequest) error
	List(context.Context, ListConsortiumRequest) (ListConsortiumResponse, error)
}

var (
	ErrInvalidCompany      = errors.New("invalid_company")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidProject      = errors.New("invalid_project")
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidResearcher   = errors.New("invalid_researcher")
	ErrInvalidRole         = errors.New("invalid_role")
	ErrAlreadyAttached     = errors.New("already_attached")
	ErrNotFound            = errors.New("not_found")
)
