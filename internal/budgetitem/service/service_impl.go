package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	budgetdomain "github.com/nextlab/researchdesk/internal/budget/domain"
	"github.com/nextlab/researchdesk/internal/budgetitem/domain"
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
	Budgets budgetdomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	budgets budgetdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("budgetitem.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		budgets: p.Budgets,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateBudgetItemRequest) (domain.BudgetItem, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.BudgetItem{}, domain.ErrInvalidCompany
	}

	budgetID, err := snowflake.ParseString(strings.TrimSpace(req.BudgetID))
	if err != nil || budgetID == 0 {
		return domain.BudgetItem{}, domain.ErrInvalidBudget
	}
	if _, err := s.budgets.GetByID(ctx, budgetdomain.GetBudgetRequest{ID: budgetID.String()}); err != nil {
		if err == budgetdomain.ErrNotFound {
			return domain.BudgetItem{}, domain.ErrInvalidBudget
		}
		return domain.BudgetItem{}, err
	}

	// Every item belongs to a category; there is no uncategorized bucket.
	categoryID, err := snowflake.ParseString(strings.TrimSpace(req.CategoryID))
	if err != nil || categoryID == 0 {
		return domain.BudgetItem{}, domain.ErrInvalidCategory
	}

	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return domain.BudgetItem{}, domain.ErrInvalidName
	}
	if req.PlannedAmount.IsNegative() {
		return domain.BudgetItem{}, domain.ErrInvalidAmount
	}

	actual := decimal.Zero
	if req.ActualAmount != nil {
		if req.ActualAmount.IsNegative() {
			return domain.BudgetItem{}, domain.ErrInvalidAmount
		}
		actual = *req.ActualAmount
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusPlanned
	}
	if status != domain.StatusPlanned && status != domain.StatusExecuted {
		return domain.BudgetItem{}, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	item := domain.BudgetItem{
		ID:            s.genID.Generate(),
		CompanyID:     companyID,
		BudgetID:      budgetID,
		CategoryID:    categoryID,
		ItemName:      name,
		PlannedAmount: req.PlannedAmount,
		ActualAmount:  actual,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.BudgetItem{}, err
	}

	s.budgets.Recompute(ctx, budgetID, companyID)

	return item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListBudgetItemRequest) (domain.ListBudgetItemResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListBudgetItemResponse{}, domain.ErrInvalidCompany
	}

	filter := domain.ListBudgetItemFilter{Status: strings.TrimSpace(req.Status)}
	if trimmed := strings.TrimSpace(req.BudgetID); trimmed != "" {
		budgetID, err := snowflake.ParseString(trimmed)
		if err != nil || budgetID == 0 {
			return domain.ListBudgetItemResponse{}, domain.ErrInvalidBudget
		}
		filter.BudgetID = budgetID
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	rows, err := s.repo.List(ctx, s.db, companyID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListBudgetItemResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, pageSize, func(item *domain.BudgetItem) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(rows) > int(pageSize) {
		rows = rows[:pageSize]
	}

	items := make([]domain.BudgetItem, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		items = append(items, *row)
	}

	resp := domain.ListBudgetItemResponse{Items: items}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetBudgetItemRequest) (domain.BudgetItem, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.BudgetItem{}, domain.ErrInvalidCompany
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.BudgetItem{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.BudgetItem{}, err
	}
	if item == nil {
		return domain.BudgetItem{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateBudgetItemRequest) (domain.BudgetItem, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.BudgetItem{}, domain.ErrInvalidCompany
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.BudgetItem{}, err
	}

	current, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.BudgetItem{}, err
	}
	if current == nil {
		return domain.BudgetItem{}, domain.ErrNotFound
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.CategoryID != nil {
		categoryID, err := snowflake.ParseString(strings.TrimSpace(*req.CategoryID))
		if err != nil || categoryID == 0 {
			return domain.BudgetItem{}, domain.ErrInvalidCategory
		}
		fields["category_id"] = categoryID
	}
	if req.ItemName != nil {
		name := strings.TrimSpace(*req.ItemName)
		if name == "" {
			return domain.BudgetItem{}, domain.ErrInvalidName
		}
		fields["item_name"] = name
	}
	if req.PlannedAmount != nil {
		if req.PlannedAmount.IsNegative() {
			return domain.BudgetItem{}, domain.ErrInvalidAmount
		}
		fields["planned_amount"] = *req.PlannedAmount
	}
	if req.ActualAmount != nil {
		if req.ActualAmount.IsNegative() {
			return domain.BudgetItem{}, domain.ErrInvalidAmount
		}
		fields["actual_amount"] = *req.ActualAmount
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status != domain.StatusPlanned && status != domain.StatusExecuted {
			return domain.BudgetItem{}, domain.ErrInvalidStatus
		}
		fields["status"] = status
	}

	if err := s.repo.UpdateFields(ctx, s.db, companyID, id, fields); err != nil {
		return domain.BudgetItem{}, err
	}

	s.budgets.Recompute(ctx, current.BudgetID, companyID)

	updated, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.BudgetItem{}, err
	}
	if updated == nil {
		return domain.BudgetItem{}, domain.ErrNotFound
	}
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetBudgetItemRequest) error {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidCompany
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	// Capture the owning budget before the row disappears; the recompute
	// below needs it.
	budgetID := item.BudgetID

	if err := s.repo.Delete(ctx, s.db, companyID, id); err != nil {
		return err
	}

	s.budgets.Recompute(ctx, budgetID, companyID)

	return nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
