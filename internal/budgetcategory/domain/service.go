package domain

import (
	"context"
	"errors"
)

type CreateBudgetCategoryRequest struct {
	Name      string
	SortOrder int
}

type UpdateBudgetCategoryRequest struct {
	ID        string
	Name      *string
	SortOrder *int
}

type ListBudgetCategoryResponse struct {
	Categories []BudgetCategory `json:"categories"`
}

type GetBudgetCategoryRequest struct {
	ID string
}

// Categories are a small per-company vocabulary, so List returns the whole
// set ordered by sort_order without pagination.
type Service interface {
	Create(context.Context, CreateBudgetCategoryRequest) (BudgetCategory, error)
	List(context.Context) (ListBudgetCategoryResponse, error)
	Update(context.Context, UpdateBudgetCategoryRequest) (BudgetCategory, error)
	Delete(context.Context, GetBudgetCategoryRequest) error
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidName    = errors.New("invalid_name")
	ErrNotFound       = errors.New("not_found")
)
