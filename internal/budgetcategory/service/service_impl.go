package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/budgetcategory/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("budgetcategory.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateBudgetCategoryRequest) (domain.BudgetCategory, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.BudgetCategory{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.BudgetCategory{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	category := domain.BudgetCategory{
		ID:        s.genID.Generate(),
		CompanyID: companyID,
		Name:      name,
		SortOrder: req.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return domain.BudgetCategory{}, err
	}

	return category, nil
}

func (s *Service) List(ctx context.Context) (domain.ListBudgetCategoryResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListBudgetCategoryResponse{}, domain.ErrInvalidCompany
	}

	var categories []domain.BudgetCategory
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("sort_order asc, name asc").
		Find(&categories).Error
	if err != nil {
		return domain.ListBudgetCategoryResponse{}, err
	}

	return domain.ListBudgetCategoryResponse{Categories: categories}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateBudgetCategoryRequest) (domain.BudgetCategory, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.BudgetCategory{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.BudgetCategory{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.BudgetCategory{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}

	result := s.db.WithContext(ctx).
		Model(&domain.BudgetCategory{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields)
	if result.Error != nil {
		return domain.BudgetCategory{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.BudgetCategory{}, domain.ErrNotFound
	}

	var category domain.BudgetCategory
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&category).Error
	if err != nil {
		return domain.BudgetCategory{}, err
	}
	return category, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetBudgetCategoryRequest) error {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.BudgetCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
