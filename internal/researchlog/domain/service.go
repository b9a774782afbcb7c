package domain

import (
	"context"
	"errors"
	"time"

	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type CreateResearchLogRequest struct {
	ProjectID string
	LogDate   time.Time
	Content   string
}

type UpdateResearchLogRequest struct {
	ID      string
	LogDate *time.Time
	Content *string
}

type ListResearchLogRequest struct {
	PageToken string
	PageSize  int32
	ProjectID string
	MemberID  string
}

type ListResearchLogResponse struct {
	pagination.PageInfo
	Logs []ResearchLog `json:"logs"`
}

type GetResearchLogRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateResearchLogRequest) (ResearchLog, error)
	List(context.Context, ListResearchLogRequest) (ListResearchLogResponse, error)
	GetByID(context.Context, GetResearchLogRequest) (ResearchLog, error)
	Update(context.Context, UpdateResearchLogRequest) (ResearchLog, error)
	Delete(context.Context, GetResearchLogRequest) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidMember  = errors.New("invalid_member")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidProject = errors.New("invalid_project")
	ErrInvalidDate    = errors.New("invalid_date")
	ErrInvalidContent = errors.New("invalid_content")
	ErrNotOwner       = errors.New("not_owner")
	ErrNotFound       = errors.New("not_found")
)

// RateLimitError signals that a member exhausted their write budget.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string { return "rate_limited" }
