package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/researcher/domain"
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
		log:   p.Log.Named("researcher.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateResearcherRequest) (domain.Researcher, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Researcher{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Researcher{}, domain.ErrInvalidName
	}

	orgID, err := parseOptionalRef(req.OrganizationID, domain.ErrInvalidOrganization)
	if err != nil {
		return domain.Researcher{}, err
	}
	projectID, err := parseOptionalRef(req.ProjectID, domain.ErrInvalidProject)
	if err != nil {
		return domain.Researcher{}, err
	}

	now := time.Now().UTC()
	researcher := domain.Researcher{
		ID:             s.genID.Generate(),
		CompanyID:      companyID,
		OrganizationID: orgID,
		ProjectID:      projectID,
		Name:           name,
		Email:          strings.TrimSpace(req.Email),
		Position:       strings.TrimSpace(req.Position),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.db.WithContext(ctx).Create(&researcher).Error; err != nil {
		return domain.Researcher{}, err
	}

	return researcher, nil
}

func (s *Service) List(ctx context.Context, req domain.ListResearcherRequest) (domain.ListResearcherResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListResearcherResponse{}, domain.ErrInvalidCompany
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var rows []*domain.Researcher
	stmt := s.db.WithContext(ctx).
		Model(&domain.Researcher{}).
		Where("company_id = ?", companyID)
	if trimmed := strings.TrimSpace(req.ProjectID); trimmed != "" {
		projectID, err := snowflake.ParseString(trimmed)
		if err != nil || projectID == 0 {
			return domain.ListResearcherResponse{}, domain.ErrInvalidProject
		}
		stmt = stmt.Where("project_id = ?", projectID)
	}
	stmt = option.ApplyPagination(pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	}).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return domain.ListResearcherResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, pageSize, func(r *domain.Researcher) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        r.ID.String(),
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(rows) > int(pageSize) {
		rows = rows[:pageSize]
	}

	researchers := make([]domain.Researcher, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		researchers = append(researchers, *row)
	}

	resp := domain.ListResearcherResponse{Researchers: researchers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetResearcherRequest) (domain.Researcher, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Researcher{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Researcher{}, err
	}

	var researcher domain.Researcher
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&researcher).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Researcher{}, domain.ErrNotFound
		}
		return domain.Researcher{}, err
	}

	return researcher, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateResearcherRequest) (domain.Researcher, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Researcher{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Researcher{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.OrganizationID != nil {
		orgID, err := parseOptionalRef(*req.OrganizationID, domain.ErrInvalidOrganization)
		if err != nil {
			return domain.Researcher{}, err
		}
		fields["organization_id"] = orgID
	}
	if req.ProjectID != nil {
		projectID, err := parseOptionalRef(*req.ProjectID, domain.ErrInvalidProject)
		if err != nil {
			return domain.Researcher{}, err
		}
		fields["project_id"] = projectID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Researcher{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Position != nil {
		fields["position"] = strings.TrimSpace(*req.Position)
	}

	result := s.db.WithContext(ctx).
		Model(&domain.Researcher{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields)
	if result.Error != nil {
		return domain.Researcher{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Researcher{}, domain.ErrNotFound
	}

	return s.GetByID(ctx, domain.GetResearcherRequest{ID: req.ID})
}

func (s *Service) Delete(ctx context.Context, req domain.GetResearcherRequest) error {
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
		Delete(&domain.Researcher{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// parseOptionalRef treats "" as an unset reference and returns errInvalid for
// anything that is present but unparseable.
func parseOptionalRef(value string, errInvalid error) (snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	id, err := snowflake.ParseString(trimmed)
	if err != nil || id == 0 {
		return 0, errInvalid
	}
	return id, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
