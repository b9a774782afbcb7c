// Package domain describes the dashboard read model: per-company counts and
// budget totals shown on the landing page.
package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type BudgetTotals struct {
	TotalBudget     decimal.Decimal `json:"total_budget"`
	UsedBudget      decimal.Decimal `json:"used_budget"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
}

type Overview struct {
	Projects         int64            `json:"projects"`
	ProjectsByStatus map[string]int64 `json:"projects_by_status"`
	Organizations    int64            `json:"organizations"`
	Investigators    int64            `json:"investigators"`
	Researchers      int64            `json:"researchers"`
	OpenMilestones   int64            `json:"open_milestones"`
	Budget           BudgetTotals     `json:"budget"`
}

type Service interface {
	Overview(context.Context) (Overview, error)
}

var ErrInvalidCompany = errors.New("invalid_company")
