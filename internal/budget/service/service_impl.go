package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/budget/domain"
	obsmetrics "github.com/nextlab/researchdesk/internal/observability/metrics"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("budget.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateBudgetRequest) (domain.Budget, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Budget{}, domain.ErrInvalidCompany
	}

	projectID, err := snowflake.ParseString(strings.TrimSpace(req.ProjectID))
	if err != nil || projectID == 0 {
		return domain.Budget{}, domain.ErrInvalidProject
	}
	if req.FiscalYear < 1900 || req.FiscalYear > 9999 {
		return domain.Budget{}, domain.ErrInvalidFiscalYear
	}
	if req.TotalBudget.IsNegative() {
		return domain.Budget{}, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		ID:              s.genID.Generate(),
		CompanyID:       companyID,
		ProjectID:       projectID,
		FiscalYear:      req.FiscalYear,
		TotalBudget:     req.TotalBudget,
		UsedBudget:      decimal.Zero,
		RemainingBudget: req.TotalBudget,
		Status:          strings.TrimSpace(req.Status),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, &budget); err != nil {
		return domain.Budget{}, err
	}

	return budget, nil
}

func (s *Service) List(ctx context.Context, req domain.ListBudgetRequest) (domain.ListBudgetResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListBudgetResponse{}, domain.ErrInvalidCompany
	}

	filter := domain.ListBudgetFilter{FiscalYear: req.FiscalYear}
	if trimmed := strings.TrimSpace(req.ProjectID); trimmed != "" {
		projectID, err := snowflake.ParseString(trimmed)
		if err != nil || projectID == 0 {
			return domain.ListBudgetResponse{}, domain.ErrInvalidProject
		}
		filter.ProjectID = projectID
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, companyID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListBudgetResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(budget *domain.Budget) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        budget.ID.String(),
			CreatedAt: budget.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	budgets := make([]domain.Budget, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		budgets = append(budgets, *item)
	}

	resp := domain.ListBudgetResponse{Budgets: budgets}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetBudgetRequest) (domain.Budget, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Budget{}, domain.ErrInvalidCompany
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Budget{}, err
	}

	budget, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Budget{}, err
	}
	if budget == nil {
		return domain.Budget{}, domain.ErrNotFound
	}

	return *budget, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateBudgetRequest) (domain.Budget, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Budget{}, domain.ErrInvalidCompany
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Budget{}, err
	}

	current, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Budget{}, err
	}
	if current == nil {
		return domain.Budget{}, domain.ErrNotFound
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.TotalBudget != nil {
		if req.TotalBudget.IsNegative() {
			return domain.Budget{}, domain.ErrInvalidAmount
		}
		fields["total_budget"] = *req.TotalBudget
	}
	if req.Status != nil {
		fields["status"] = strings.TrimSpace(*req.Status)
	}

	if err := s.repo.UpdateFields(ctx, s.db, companyID, id, fields); err != nil {
		return domain.Budget{}, err
	}

	// A new total changes the derived remaining; re-derive immediately so
	// the row never reports a stale remaining.
	s.Recompute(ctx, id, companyID)

	updated, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Budget{}, err
	}
	if updated == nil {
		return domain.Budget{}, domain.ErrNotFound
	}
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetBudgetRequest) error {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidCompany
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	budget, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return err
	}
	if budget == nil {
		return domain.ErrNotFound
	}

	// Line items are owned by the budget; remove them in the same
	// transaction so no orphans survive.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM budget_items WHERE company_id = ? AND budget_id = ?`,
			companyID, id,
		).Error; err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, companyID, id)
	})
}

// Recompute re-derives used/remaining for one budget from its current item
// set. All three steps run in one transaction, so concurrent item mutations
// serialize on the budget row instead of racing a read-modify-write window.
// Failures are logged and swallowed: the item mutation that triggered the
// recompute has already succeeded and must not be failed retroactively.
func (s *Service) Recompute(ctx context.Context, budgetID, companyID snowflake.ID) {
	if budgetID == 0 || companyID == 0 {
		return
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		used, err := s.repo.SumItemActuals(ctx, tx, companyID, budgetID)
		if err != nil {
			return err
		}

		budget, err := s.repo.FindByID(ctx, tx, companyID, budgetID)
		if err != nil {
			return err
		}
		if budget == nil {
			// Absent budget is benign: nothing to update.
			return nil
		}

		remaining := budget.TotalBudget.Sub(used)
		return s.repo.SetDerivedTotals(ctx, tx, companyID, budgetID, used, remaining)
	})
	if err != nil {
		s.metrics.RecordBudgetRecomputeFailure(ctx, companyID.String())
		s.log.Error("budget recompute failed",
			zap.String("budget_id", budgetID.String()),
			zap.String("company_id", companyID.String()),
			zap.Error(err),
		)
		return
	}

	s.metrics.RecordBudgetRecompute(ctx, companyID.String())
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
