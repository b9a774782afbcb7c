package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/announcement/domain"
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
		log:   p.Log.Named("announcement.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAnnouncementRequest) (domain.Announcement, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Announcement{}, domain.ErrInvalidCompany
	}
	memberID, ok := tenantctx.MemberIDFromContext(ctx)
	if !ok {
		return domain.Announcement{}, domain.ErrInvalidMember
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Announcement{}, domain.ErrInvalidTitle
	}

	now := time.Now().UTC()
	announcement := domain.Announcement{
		ID:        s.genID.Generate(),
		CompanyID: companyID,
		AuthorID:  memberID,
		Title:     title,
		Body:      req.Body,
		Pinned:    req.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&announcement).Error; err != nil {
		return domain.Announcement{}, err
	}

	return announcement, nil
}

func (s *Service) List(ctx context.Context, req domain.ListAnnouncementRequest) (domain.ListAnnouncementResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListAnnouncementResponse{}, domain.ErrInvalidCompany
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var rows []*domain.Announcement
	stmt := s.db.WithContext(ctx).
		Model(&domain.Announcement{}).
		Where("company_id = ?", companyID)
	if req.Pinned != nil {
		stmt = stmt.Where("pinned = ?", *req.Pinned)
	}
	stmt = option.ApplyPagination(pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	}).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return domain.ListAnnouncementResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, pageSize, func(a *domain.Announcement) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        a.ID.String(),
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(rows) > int(pageSize) {
		rows = rows[:pageSize]
	}

	announcements := make([]domain.Announcement, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		announcements = append(announcements, *row)
	}

	resp := domain.ListAnnouncementResponse{Announcements: announcements}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetAnnouncementRequest) (domain.Announcement, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Announcement{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Announcement{}, err
	}

	var announcement domain.Announcement
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&announcement).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Announcement{}, domain.ErrNotFound
		}
		return domain.Announcement{}, err
	}

	return announcement, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateAnnouncementRequest) (domain.Announcement, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Announcement{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Announcement{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Announcement{}, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}
	if req.Body != nil {
		fields["body"] = *req.Body
	}
	if req.Pinned != nil {
		fields["pinned"] = *req.Pinned
	}

	result := s.db.WithContext(ctx).
		Model(&domain.Announcement{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields)
	if result.Error != nil {
		return domain.Announcement{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Announcement{}, domain.ErrNotFound
	}

	return s.GetByID(ctx, domain.GetAnnouncementRequest{ID: req.ID})
}

func (s *Service) Delete(ctx context.Context, req domain.GetAnnouncementRequest) error {
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
		Delete(&domain.Announcement{})
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
