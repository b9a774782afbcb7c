package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/milestone/domain"
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
		log:   p.Log.Named("milestone.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateMilestoneRequest) (domain.Milestone, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Milestone{}, domain.ErrInvalidCompany
	}

	projectID, err := snowflake.ParseString(strings.TrimSpace(req.ProjectID))
	if err != nil || projectID == 0 {
		return domain.Milestone{}, domain.ErrInvalidProject
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Milestone{}, domain.ErrInvalidTitle
	}

	now := time.Now().UTC()
	milestone := domain.Milestone{
		ID:        s.genID.Generate(),
		CompanyID: companyID,
		ProjectID: projectID,
		Title:     title,
		DueDate:   req.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&milestone).Error; err != nil {
		return domain.Milestone{}, err
	}

	return milestone, nil
}

func (s *Service) List(ctx context.Context, req domain.ListMilestoneRequest) (domain.ListMilestoneResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListMilestoneResponse{}, domain.ErrInvalidCompany
	}

	stmt := s.db.WithContext(ctx).
		Where("company_id = ?", companyID)
	if trimmed := strings.TrimSpace(req.ProjectID); trimmed != "" {
		projectID, err := snowflake.ParseString(trimmed)
		if err != nil || projectID == 0 {
			return domain.ListMilestoneResponse{}, domain.ErrInvalidProject
		}
		stmt = stmt.Where("project_id = ?", projectID)
	}
	if req.Done != nil {
		stmt = stmt.Where("done = ?", *req.Done)
	}

	var milestones []domain.Milestone
	// Undated milestones sort last.
	err := stmt.Order("due_date is null, due_date asc, id asc").Find(&milestones).Error
	if err != nil {
		return domain.ListMilestoneResponse{}, err
	}

	return domain.ListMilestoneResponse{Milestones: milestones}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateMilestoneRequest) (domain.Milestone, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Milestone{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Milestone{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Milestone{}, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}
	if req.DueDate != nil {
		fields["due_date"] = req.DueDate
	}
	if req.Done != nil {
		fields["done"] = *req.Done
	}

	result := s.db.WithContext(ctx).
		Model(&domain.Milestone{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields)
	if result.Error != nil {
		return domain.Milestone{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Milestone{}, domain.ErrNotFound
	}

	var milestone domain.Milestone
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&milestone).Error
	if err != nil {
		return domain.Milestone{}, err
	}
	return milestone, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetMilestoneRequest) error {
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
		Delete(&domain.Milestone{})
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
