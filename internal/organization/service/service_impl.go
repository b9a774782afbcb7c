package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/organization/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/nextlab/researchdesk/pkg/db/option"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
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
		log:   p.Log.Named("organization.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrganizationRequest) (domain.Organization, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Organization{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Organization{}, domain.ErrInvalidName
	}
	orgType := strings.TrimSpace(req.Type)
	if !validType(orgType) {
		return domain.Organization{}, domain.ErrInvalidType
	}

	now := time.Now().UTC()
	org := domain.Organization{
		ID:           s.genID.Generate(),
		CompanyID:    companyID,
		Name:         name,
		Code:         strings.TrimSpace(req.Code),
		Type:         orgType,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.WithContext(ctx).Create(&org).Error; err != nil {
		return domain.Organization{}, err
	}

	return org, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOrganizationRequest) (domain.ListOrganizationResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListOrganizationResponse{}, domain.ErrInvalidCompany
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var rows []*domain.Organization
	stmt := s.db.WithContext(ctx).
		Model(&domain.Organization{}).
		Where("company_id = ?", companyID)
	if orgType := strings.TrimSpace(req.Type); orgType != "" {
		stmt = stmt.Where("type = ?", orgType)
	}
	stmt = option.ApplyPagination(pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	}).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return domain.ListOrganizationResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, pageSize, func(org *domain.Organization) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        org.ID.String(),
			CreatedAt: org.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(rows) > int(pageSize) {
		rows = rows[:pageSize]
	}

	orgs := make([]domain.Organization, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		orgs = append(orgs, *row)
	}

	resp := domain.ListOrganizationResponse{Organizations: orgs}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetOrganizationRequest) (domain.Organization, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Organization{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Organization{}, err
	}

	var org domain.Organization
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&org).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Organization{}, domain.ErrNotFound
		}
		return domain.Organization{}, err
	}

	return org, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateOrganizationRequest) (domain.Organization, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Organization{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Organization{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Organization{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Code != nil {
		fields["code"] = strings.TrimSpace(*req.Code)
	}
	if req.Type != nil {
		orgType := strings.TrimSpace(*req.Type)
		if !validType(orgType) {
			return domain.Organization{}, domain.ErrInvalidType
		}
		fields["type"] = orgType
	}
	if req.ContactEmail != nil {
		fields["contact_email"] = strings.TrimSpace(*req.ContactEmail)
	}

	result := s.db.WithContext(ctx).
		Model(&domain.Organization{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields)
	if result.Error != nil {
		return domain.Organization{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Organization{}, domain.ErrNotFound
	}

	return s.GetByID(ctx, domain.GetOrganizationRequest{ID: req.ID})
}

func (s *Service) Delete(ctx context.Context, req domain.GetOrganizationRequest) error {
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
		Delete(&domain.Organization{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func validType(value string) bool {
	switch value {
	case "", domain.TypeUniversity, domain.TypeCompany, domain.TypeInstitute, domain.TypeGovernment:
		return true
	}
	return false
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
