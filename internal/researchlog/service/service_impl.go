package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	obsmetrics "github.com/nextlab/researchdesk/internal/observability/metrics"
	"github.com/nextlab/researchdesk/internal/ratelimit"
	"github.com/nextlab/researchdesk/internal/researchlog/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/nextlab/researchdesk/pkg/db/option"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Limiter *ratelimit.LogWriteLimiter `optional:"true"`
	Metrics *obsmetrics.Metrics        `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	limiter *ratelimit.LogWriteLimiter
	metrics *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("researchlog.service"),
		genID:   p.GenID,
		limiter: p.Limiter,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateResearchLogRequest) (domain.ResearchLog, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ResearchLog{}, domain.ErrInvalidCompany
	}
	memberID, ok := tenantctx.MemberIDFromContext(ctx)
	if !ok {
		return domain.ResearchLog{}, domain.ErrInvalidMember
	}

	projectID, err := snowflake.ParseString(strings.TrimSpace(req.ProjectID))
	if err != nil || projectID == 0 {
		return domain.ResearchLog{}, domain.ErrInvalidProject
	}
	if req.LogDate.IsZero() {
		return domain.ResearchLog{}, domain.ErrInvalidDate
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return domain.ResearchLog{}, domain.ErrInvalidContent
	}

	if err := s.allowWrite(ctx, companyID, memberID); err != nil {
		return domain.ResearchLog{}, err
	}

	now := time.Now().UTC()
	logEntry := domain.ResearchLog{
		ID:        s.genID.Generate(),
		CompanyID: companyID,
		ProjectID: projectID,
		MemberID:  memberID,
		LogDate:   req.LogDate.UTC().Truncate(24 * time.Hour),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&logEntry).Error; err != nil {
		return domain.ResearchLog{}, err
	}

	return logEntry, nil
}

func (s *Service) List(ctx context.Context, req domain.ListResearchLogRequest) (domain.ListResearchLogResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListResearchLogResponse{}, domain.ErrInvalidCompany
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var rows []*domain.ResearchLog
	stmt := s.db.WithContext(ctx).
		Model(&domain.ResearchLog{}).
		Where("company_id = ?", companyID)
	if trimmed := strings.TrimSpace(req.ProjectID); trimmed != "" {
		projectID, err := snowflake.ParseString(trimmed)
		if err != nil || projectID == 0 {
			return domain.ListResearchLogResponse{}, domain.ErrInvalidProject
		}
		stmt = stmt.Where("project_id = ?", projectID)
	}
	if trimmed := strings.TrimSpace(req.MemberID); trimmed != "" {
		memberID, err := snowflake.ParseString(trimmed)
		if err != nil || memberID == 0 {
			return domain.ListResearchLogResponse{}, domain.ErrInvalidMember
		}
		stmt = stmt.Where("member_id = ?", memberID)
	}
	stmt = option.ApplyPagination(pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	}).Apply(stmt)
	if err := stmt.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return domain.ListResearchLogResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, pageSize, func(entry *domain.ResearchLog) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        entry.ID.String(),
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(rows) > int(pageSize) {
		rows = rows[:pageSize]
	}

	logs := make([]domain.ResearchLog, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		logs = append(logs, *row)
	}

	resp := domain.ListResearchLogResponse{Logs: logs}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetResearchLogRequest) (domain.ResearchLog, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ResearchLog{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.ResearchLog{}, err
	}

	var entry domain.ResearchLog
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ResearchLog{}, domain.ErrNotFound
		}
		return domain.ResearchLog{}, err
	}

	return entry, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateResearchLogRequest) (domain.ResearchLog, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ResearchLog{}, domain.ErrInvalidCompany
	}
	memberID, ok := tenantctx.MemberIDFromContext(ctx)
	if !ok {
		return domain.ResearchLog{}, domain.ErrInvalidMember
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.ResearchLog{}, err
	}

	current, err := s.GetByID(ctx, domain.GetResearchLogRequest{ID: req.ID})
	if err != nil {
		return domain.ResearchLog{}, err
	}
	// Logs are personal; only the author edits them.
	if current.MemberID != memberID {
		return domain.ResearchLog{}, domain.ErrNotOwner
	}

	if err := s.allowWrite(ctx, companyID, memberID); err != nil {
		return domain.ResearchLog{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.LogDate != nil {
		if req.LogDate.IsZero() {
			return domain.ResearchLog{}, domain.ErrInvalidDate
		}
		fields["log_date"] = req.LogDate.UTC().Truncate(24 * time.Hour)
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return domain.ResearchLog{}, domain.ErrInvalidContent
		}
		fields["content"] = content
	}

	err = s.db.WithContext(ctx).
		Model(&domain.ResearchLog{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields).Error
	if err != nil {
		return domain.ResearchLog{}, err
	}

	return s.GetByID(ctx, domain.GetResearchLogRequest{ID: req.ID})
}

func (s *Service) Delete(ctx context.Context, req domain.GetResearchLogRequest) error {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidCompany
	}
	memberID, ok := tenantctx.MemberIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidMember
	}

	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	current, err := s.GetByID(ctx, req)
	if err != nil {
		return err
	}
	if current.MemberID != memberID {
		return domain.ErrNotOwner
	}

	result := s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.ResearchLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) allowWrite(ctx context.Context, companyID, memberID snowflake.ID) error {
	if !s.limiter.Enabled() {
		return nil
	}

	res, err := s.limiter.Allow(ctx, companyID.String(), memberID.String())
	if err != nil {
		// A broken limiter should not block writes.
		s.log.Warn("log write limiter unavailable", zap.Error(err))
		return nil
	}
	if res.Allowed {
		s.metrics.RecordRateLimitAllowed(ctx, companyID.String(), "research_logs")
		return nil
	}

	s.metrics.RecordRateLimitDenied(ctx, companyID.String(), "research_logs", "write_budget_exhausted")
	return &domain.RateLimitError{RetryAfter: res.RetryAfter}
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
