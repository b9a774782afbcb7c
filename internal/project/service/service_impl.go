package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/project/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("project.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProjectRequest) (domain.Project, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Project{}, domain.ErrInvalidCompany
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Project{}, domain.ErrInvalidTitle
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusPreparing
	}
	if !domain.ValidStatus(status) {
		return domain.Project{}, domain.ErrInvalidStatus
	}

	var investigatorID snowflake.ID
	if trimmed := strings.TrimSpace(req.InvestigatorID); trimmed != "" {
		parsed, err := snowflake.ParseString(trimmed)
		if err != nil || parsed == 0 {
			return domain.Project{}, domain.ErrInvalidInvestigator
		}
		investigatorID = parsed
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return domain.Project{}, domain.ErrInvalidDateRange
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:             s.genID.Generate(),
		CompanyID:      companyID,
		InvestigatorID: investigatorID,
		Title:          title,
		Code:           strings.TrimSpace(req.Code),
		Description:    strings.TrimSpace(req.Description),
		Status:         status,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Metadata != nil {
		project.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Insert(ctx, s.db, &project); err != nil {
		return domain.Project{}, err
	}

	return project, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProjectRequest) (domain.ListProjectResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListProjectResponse{}, domain.ErrInvalidCompany
	}

	filter := domain.ListProjectFilter{Status: strings.TrimSpace(req.Status)}
	if filter.Status != "" && !domain.ValidStatus(filter.Status) {
		return domain.ListProjectResponse{}, domain.ErrInvalidStatus
	}
	if trimmed := strings.TrimSpace(req.InvestigatorID); trimmed != "" {
		investigatorID, err := snowflake.ParseString(trimmed)
		if err != nil || investigatorID == 0 {
			return domain.ListProjectResponse{}, domain.ErrInvalidInvestigator
		}
		filter.InvestigatorID = investigatorID
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
		return domain.ListProjectResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, pageSize, func(project *domain.Project) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        project.ID.String(),
			CreatedAt: project.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(rows) > int(pageSize) {
		rows = rows[:pageSize]
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		projects = append(projects, *row)
	}

	resp := domain.ListProjectResponse{Projects: projects}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetProjectRequest) (domain.Project, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Project{}, domain.ErrInvalidCompany
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Project{}, err
	}

	project, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Project{}, err
	}
	if project == nil {
		return domain.Project{}, domain.ErrNotFound
	}

	return *project, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProjectRequest) (domain.Project, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Project{}, domain.ErrInvalidCompany
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Project{}, err
	}

	current, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Project{}, err
	}
	if current == nil {
		return domain.Project{}, domain.ErrNotFound
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.InvestigatorID != nil {
		investigatorID, err := snowflake.ParseString(strings.TrimSpace(*req.InvestigatorID))
		if err != nil || investigatorID == 0 {
			return domain.Project{}, domain.ErrInvalidInvestigator
		}
		fields["investigator_id"] = investigatorID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Project{}, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}
	if req.Code != nil {
		fields["code"] = strings.TrimSpace(*req.Code)
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if !domain.ValidStatus(status) {
			return domain.Project{}, domain.ErrInvalidStatus
		}
		fields["status"] = status
	}

	// Range check against the values the row will end up with, not just the
	// incoming pair.
	start, end := current.StartDate, current.EndDate
	if req.StartDate != nil {
		start = req.StartDate
		fields["start_date"] = req.StartDate
	}
	if req.EndDate != nil {
		end = req.EndDate
		fields["end_date"] = req.EndDate
	}
	if start != nil && end != nil && end.Before(*start) {
		return domain.Project{}, domain.ErrInvalidDateRange
	}

	if req.Metadata != nil {
		fields["metadata"] = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.UpdateFields(ctx, s.db, companyID, id, fields); err != nil {
		return domain.Project{}, err
	}

	updated, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Project{}, err
	}
	if updated == nil {
		return domain.Project{}, domain.ErrNotFound
	}
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetProjectRequest) error {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidCompany
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	project, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, companyID, id)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
