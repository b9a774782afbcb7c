package domain

import (
	"context"
	"errors"
	"time"
)

type CreateScheduleRequest struct {
	ProjectID string
	TypeID    string
	Title     string
	StartsAt  time.Time
	EndsAt    *time.Time
	Location  string
	Notes     string
}

type UpdateScheduleRequest struct {
	ID       string
	TypeID   *string
	Title    *string
	StartsAt *time.Time
	EndsAt   *time.Time
	Location *string
	Notes    *string
}

type ListScheduleRequest struct {
	ProjectID string
	From      *time.Time
	To        *time.Time
}

type ListScheduleResponse struct {
	Schedules []Schedule `json:"schedules"`
}

type ListScheduleTypeResponse struct {
	Types []ScheduleType `json:"types"`
}

type GetScheduleRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateScheduleRequest) (Schedule, error)
	List(context.Context, ListScheduleRequest) (ListScheduleResponse, error)
	Update(context.Context, UpdateScheduleRequest) (Schedule, error)
	Delete(context.Context, GetScheduleRequest) error

	// ListTypes returns the company's schedule type vocabulary, seeding the
	// default set first when the company has none.
	ListTypes(context.Context) (ListScheduleTypeResponse, error)
}

var (
	ErrInvalidCompany  = errors.New("invalid_company")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidProject  = errors.New("invalid_project")
	ErrInvalidType     = errors.New("invalid_type")
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrInvalidTimespan = errors.New("invalid_timespan")
	ErrNotFound        = errors.New("not_found")
)
