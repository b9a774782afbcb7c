package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CreateKPIRequest struct {
	ProjectID    string
	Name         string
	Unit         string
	TargetValue  decimal.Decimal
	CurrentValue *decimal.Decimal
}

type UpdateKPIRequest struct {
	ID           string
	Name         *string
	Unit         *string
	TargetValue  *decimal.Decimal
	CurrentValue *decimal.Decimal
}

type ListKPIRequest struct {
	ProjectID string
}

type ListKPIResponse struct {
	KPIs []KPI `json:"kpis"`
}

type GetKPIRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateKPIRequest) (KPI, error)
	List(context.Context, ListKPIRequest) (ListKPIResponse, error)
	Update(context.Context, UpdateKPIRequest) (KPI, error)
	Delete(context.Context, GetKPIRequest) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidProject = errors.New("invalid_project")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidValue   = errors.New("invalid_value")
	ErrNotFound       = errors.New("not_found")
)
