package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/investigator/domain"
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
		log:   p.Log.Named("investigator.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvestigatorRequest) (domain.Investigator, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Investigator{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Investigator{}, domain.ErrInvalidName
	}

	var orgID snowflake.ID
	if trimmed := strings.TrimSpace(req.OrganizationID); trimmed != "" {
		parsed, err := snowflake.ParseString(trimmed)
		if err != nil || parsed == 0 {
			return domain.Investigator{}, domain.ErrInvalidOrganization
		}
		orgID = parsed
	}

	now := time.Now().UTC()
	investigator := domain.Investigator{
		ID:             s.genID.Generate(),
		CompanyID:      companyID,
		OrganizationID: orgID,
		Name:           name,
		Email:          strings.TrimSpace(req.Email),
		Specialty:      strings.TrimSpace(req.Specialty),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.db.WithContext(ctx).Create(&investigator).Error; err != nil {
		return domain.Investigator{}, err
	}

	return investigator, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvestigatorRequest) (domain.ListInvestigatorResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListInvestigatorResponse{}, domain.ErrInvalidCompany
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var rows []*domain.Investigator
	stmt := s.db.WithContext(ctx).
		Model(&domain.Investigator{}).
		Where("company_id = ?", companyID)
	if trimmed := strings.TrimSpace(req.OrganizationID); trimmed != "" {
		orgID, err := snowflake.ParseString(trimmed)
		if err != nil || orgID == 0 {
			return domain.ListInvestigatorResponse{}, domain.ErrInvalidOrganization
		}
		stmt = stmt.Where("organization_id = ?", orgID)
	}
	stmt = option.ApplyPagination(pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	}).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return domain.ListInvestigatorResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, pageSize, func(inv *domain.Investigator) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        inv.ID.String(),
			CreatedAt: inv.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(rows) > int(pageSize) {
		rows = rows[:pageSize]
	}

	investigators := make([]domain.Investigator, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		investigators = append(investigators, *row)
	}

	resp := domain.ListInvestigatorResponse{Investigators: investigators}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInvestigatorRequest) (domain.Investigator, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Investigator{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Investigator{}, err
	}

	var investigator domain.Investigator
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&investigator).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Investigator{}, domain.ErrNotFound
		}
		return domain.Investigator{}, err
	}

	return investigator, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInvestigatorRequest) (domain.Investigator, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Investigator{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Investigator{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.OrganizationID != nil {
		orgID, err := snowflake.ParseString(strings.TrimSpace(*req.OrganizationID))
		if err != nil || orgID == 0 {
			return domain.Investigator{}, domain.ErrInvalidOrganization
		}
		fields["organization_id"] = orgID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Investigator{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Specialty != nil {
		fields["specialty"] = strings.TrimSpace(*req.Specialty)
	}

	result := s.db.WithContext(ctx).
		Model(&domain.Investigator{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields)
	if result.Error != nil {
		return domain.Investigator{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Investigator{}, domain.ErrNotFound
	}

	return s.GetByID(ctx, domain.GetInvestigatorRequest{ID: req.ID})
}

func (s *Service) Delete(ctx context.Context, req domain.GetInvestigatorRequest) error {
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
		Delete(&domain.Investigator{})
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
