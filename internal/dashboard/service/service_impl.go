package service

import (
	"context"

	budgetdomain "github.com/nextlab/researchdesk/internal/budget/domain"
	"github.com/nextlab/researchdesk/internal/dashboard/domain"
	investigatordomain "github.com/nextlab/researchdesk/internal/investigator/domain"
	milestonedomain "github.com/nextlab/researchdesk/internal/milestone/domain"
	organizationdomain "github.com/nextlab/researchdesk/internal/organization/domain"
	projectdomain "github.com/nextlab/researchdesk/internal/project/domain"
	researcherdomain "github.com/nextlab/researchdesk/internal/researcher/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(p Params) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("dashboard.service"),
	}
}

func (s *Service) Overview(ctx context.Context) (domain.Overview, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Overview{}, domain.ErrInvalidCompany
	}

	overview := domain.Overview{
		ProjectsByStatus: map[string]int64{},
		Budget: domain.BudgetTotals{
			TotalBudget:     decimal.Zero,
			UsedBudget:      decimal.Zero,
			RemainingBudget: decimal.Zero,
		},
	}

	counts := []struct {
		model any
		dest  *int64
	}{
		{&projectdomain.Project{}, &overview.Projects},
		{&organizationdomain.Organization{}, &overview.Organizations},
		{&investigatordomain.Investigator{}, &overview.Investigators},
		{&researcherdomain.Researcher{}, &overview.Researchers},
	}
	for _, c := range counts {
		err := s.db.WithContext(ctx).
			Model(c.model).
			Where("company_id = ?", companyID).
			Count(c.dest).Error
		if err != nil {
			return domain.Overview{}, err
		}
	}

	var statusRows []struct {
		Status string
		Total  int64
	}
	err := s.db.WithContext(ctx).
		Model(&projectdomain.Project{}).
		Select("status, count(*) as total").
		Where("company_id = ?", companyID).
		Group("status").
		Find(&statusRows).Error
	if err != nil {
		return domain.Overview{}, err
	}
	for _, row := range statusRows {
		overview.ProjectsByStatus[row.Status] = row.Total
	}

	err = s.db.WithContext(ctx).
		Model(&milestonedomain.Milestone{}).
		Where("company_id = ? AND done = ?", companyID, false).
		Count(&overview.OpenMilestones).Error
	if err != nil {
		return domain.Overview{}, err
	}

	// Budget columns are summed in Go to keep decimal math exact.
	var budgets []budgetdomain.Budget
	err = s.db.WithContext(ctx).
		Select("total_budget", "used_budget", "remaining_budget").
		Where("company_id = ?", companyID).
		Find(&budgets).Error
	if err != nil {
		return domain.Overview{}, err
	}
	for _, b := range budgets {
		overview.Budget.TotalBudget = overview.Budget.TotalBudget.Add(b.TotalBudget)
		overview.Budget.UsedBudget = overview.Budget.UsedBudget.Add(b.UsedBudget)
		overview.Budget.RemainingBudget = overview.Budget.RemainingBudget.Add(b.RemainingBudget)
	}

	return overview, nil
}
