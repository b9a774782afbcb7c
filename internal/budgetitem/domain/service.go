package domain

import (
	"context"
	"errors"

	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreateBudgetItemRequest struct {
	BudgetID      string
	CategoryID    string
	ItemName      string
	PlannedAmount decimal.Decimal
	ActualAmount  *decimal.Decimal
	Status        string
}

type UpdateBudgetItemRequest struct {
	ID            string
	CategoryID    *string
	ItemName      *string
	PlannedAmount *decimal.Decimal
	ActualAmount  *decimal.Decimal
	Status        *string
}

type ListBudgetItemRequest struct {
	PageToken string
	PageSize  int32
	BudgetID  string
	Status    string
}

type ListBudgetItemResponse struct {
	pagination.PageInfo
	Items []BudgetItem `json:"items"`
}

type GetBudgetItemRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateBudgetItemRequest) (BudgetItem, error)
	List(context.Context, ListBudgetItemRequest) (ListBudgetItemResponse, error)
	GetByID(context.Context, GetBudgetItemRequest) (BudgetItem, error)
	Update(context.Context, UpdateBudgetItemRequest) (BudgetItem, error)
	Delete(context.Context, GetBudgetItemRequest) error
}

var (
	ErrInvalidCompany  = errors.New("invalid_company")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidBudget   = errors.New("invalid_budget")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrNotFound        = errors.New("not_found")
)
