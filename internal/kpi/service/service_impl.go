package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/kpi/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/shopspring/decimal"
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
		log:   p.Log.Named("kpi.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateKPIRequest) (domain.KPI, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.KPI{}, domain.ErrInvalidCompany
	}

	projectID, err := snowflake.ParseString(strings.TrimSpace(req.ProjectID))
	if err != nil || projectID == 0 {
		return domain.KPI{}, domain.ErrInvalidProject
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.KPI{}, domain.ErrInvalidName
	}
	if req.TargetValue.IsNegative() {
		return domain.KPI{}, domain.ErrInvalidValue
	}

	current := decimal.Zero
	if req.CurrentValue != nil {
		if req.CurrentValue.IsNegative() {
			return domain.KPI{}, domain.ErrInvalidValue
		}
		current = *req.CurrentValue
	}

	now := time.Now().UTC()
	kpi := domain.KPI{
		ID:           s.genID.Generate(),
		CompanyID:    companyID,
		ProjectID:    projectID,
		Name:         name,
		Unit:         strings.TrimSpace(req.Unit),
		TargetValue:  req.TargetValue,
		CurrentValue: current,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.WithContext(ctx).Create(&kpi).Error; err != nil {
		return domain.KPI{}, err
	}

	return kpi, nil
}

func (s *Service) List(ctx context.Context, req domain.ListKPIRequest) (domain.ListKPIResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListKPIResponse{}, domain.ErrInvalidCompany
	}

	stmt := s.db.WithContext(ctx).
		Where("company_id = ?", companyID)
	if trimmed := strings.TrimSpace(req.ProjectID); trimmed != "" {
		projectID, err := snowflake.ParseString(trimmed)
		if err != nil || projectID == 0 {
			return domain.ListKPIResponse{}, domain.ErrInvalidProject
		}
		stmt = stmt.Where("project_id = ?", projectID)
	}

	var kpis []domain.KPI
	if err := stmt.Order("created_at asc, id asc").Find(&kpis).Error; err != nil {
		return domain.ListKPIResponse{}, err
	}

	return domain.ListKPIResponse{KPIs: kpis}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateKPIRequest) (domain.KPI, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.KPI{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.KPI{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.KPI{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Unit != nil {
		fields["unit"] = strings.TrimSpace(*req.Unit)
	}
	if req.TargetValue != nil {
		if req.TargetValue.IsNegative() {
			return domain.KPI{}, domain.ErrInvalidValue
		}
		fields["target_value"] = *req.TargetValue
	}
	if req.CurrentValue != nil {
		if req.CurrentValue.IsNegative() {
			return domain.KPI{}, domain.ErrInvalidValue
		}
		fields["current_value"] = *req.CurrentValue
	}

	result := s.db.WithContext(ctx).
		Model(&domain.KPI{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields)
	if result.Error != nil {
		return domain.KPI{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.KPI{}, domain.ErrNotFound
	}

	var kpi domain.KPI
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&kpi).Error
	if err != nil {
		return domain.KPI{}, err
	}
	return kpi, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetKPIRequest) error {
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
		Delete(&domain.KPI{})
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
