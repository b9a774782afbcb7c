package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreateBudgetRequest struct {
	ProjectID   string
	FiscalYear  int
	TotalBudget decimal.Decimal
	Status      string
}

type UpdateBudgetRequest struct {
	ID          string
	TotalBudget *decimal.Decimal
	Status      *string
}

type ListBudgetRequest struct {
	PageToken  string
	PageSize   int32
	ProjectID  string
	FiscalYear int
}

type ListBudgetResponse struct {
	pagination.PageInfo
	Budgets []Budget `json:"budgets"`
}

type GetBudgetRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateBudgetRequest) (Budget, error)
	List(context.Context, ListBudgetRequest) (ListBudgetResponse, error)
	GetByID(context.Context, GetBudgetRequest) (Budget, error)
	Update(context.Context, UpdateBudgetRequest) (Budget, error)
	Delete(context.Context, GetBudgetRequest) error

	// Recompute re-derives used/remaining from the budget's current line
	// items. It is fire-and-forget: data-access failures are logged, never
	// returned, and a missing budget is a silent no-op.
	Recompute(ctx context.Context, budgetID, companyID snowflake.ID)
}

var (
	ErrInvalidCompany    = errors.New("invalid_company")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidProject    = errors.New("invalid_project")
	ErrInvalidFiscalYear = errors.New("invalid_fiscal_year")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrNotFound          = errors.New("not_found")
)
