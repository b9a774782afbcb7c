package domain

import (
	"context"
	"errors"
	"time"
)

type CreateMilestoneRequest struct {
	ProjectID string
	Title     string
	DueDate   *time.Time
}

type UpdateMilestoneRequest struct {
	ID      string
	Title   *string
	DueDate *time.Time
	Done    *bool
}

type ListMilestoneRequest struct {
	ProjectID string
	Done      *bool
}

type ListMilestoneResponse struct {
	Milestones []Milestone `json:"milestones"`
}

type GetMilestoneRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateMilestoneRequest) (Milestone, error)
	List(context.Context, ListMilestoneRequest) (ListMilestoneResponse, error)
	Update(context.Context, UpdateMilestoneRequest) (Milestone, error)
	Delete(context.Context, GetMilestoneRequest) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidProject = errors.New("invalid_project")
	ErrInvalidTitle   = errors.New("invalid_title")
	ErrNotFound       = errors.New("not_found")
)
