package domain

import (
	"context"
	"errors"

	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type CreateAnnouncementRequest struct {
	Title  string
	Body   string
	Pinned bool
}

type UpdateAnnouncementRequest struct {
	ID     string
	Title  *string
	Body   *string
	Pinned *bool
}

type ListAnnouncementRequest struct {
	PageToken string
	PageSize  int32
	Pinned    *bool
}

type ListAnnouncementResponse struct {
	pagination.PageInfo
	Announcements []Announcement `json:"announcements"`
}

type GetAnnouncementRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateAnnouncementRequest) (Announcement, error)
	List(context.Context, ListAnnouncementRequest) (ListAnnouncementResponse, error)
	GetByID(context.Context, GetAnnouncementRequest) (Announcement, error)
	Update(context.Context, UpdateAnnouncementRequest) (Announcement, error)
	Delete(context.Context, GetAnnouncementRequest) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidMember  = errors.New("invalid_member")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidTitle   = errors.New("invalid_title")
	ErrNotFound       = errors.New("not_found")
)
