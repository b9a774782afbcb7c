package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	obsmetrics "github.com/nextlab/researchdesk/internal/observability/metrics"
	"github.com/nextlab/researchdesk/internal/schedule/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultTypes is seeded for a company the first time its vocabulary is read.
var defaultTypes = []struct {
	Name  string
	Color string
}{
	{"meeting", "#2563eb"},
	{"deadline", "#dc2626"},
	{"report", "#d97706"},
	{"review", "#7c3aed"},
	{"event", "#059669"},
}

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("schedule.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateScheduleRequest) (domain.Schedule, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Schedule{}, domain.ErrInvalidCompany
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Schedule{}, domain.ErrInvalidTitle
	}
	if req.StartsAt.IsZero() {
		return domain.Schedule{}, domain.ErrInvalidTimespan
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return domain.Schedule{}, domain.ErrInvalidTimespan
	}

	var projectID snowflake.ID
	if trimmed := strings.TrimSpace(req.ProjectID); trimmed != "" {
		parsed, err := snowflake.ParseString(trimmed)
		if err != nil || parsed == 0 {
			return domain.Schedule{}, domain.ErrInvalidProject
		}
		projectID = parsed
	}

	var typeID snowflake.ID
	if trimmed := strings.TrimSpace(req.TypeID); trimmed != "" {
		parsed, err := snowflake.ParseString(trimmed)
		if err != nil || parsed == 0 {
			return domain.Schedule{}, domain.ErrInvalidType
		}
		typeID = parsed
	}

	now := time.Now().UTC()
	schedule := domain.Schedule{
		ID:        s.genID.Generate(),
		CompanyID: companyID,
		ProjectID: projectID,
		TypeID:    typeID,
		Title:     title,
		StartsAt:  req.StartsAt.UTC(),
		EndsAt:    req.EndsAt,
		Location:  strings.TrimSpace(req.Location),
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&schedule).Error; err != nil {
		return domain.Schedule{}, err
	}

	return schedule, nil
}

func (s *Service) List(ctx context.Context, req domain.ListScheduleRequest) (domain.ListScheduleResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListScheduleResponse{}, domain.ErrInvalidCompany
	}

	stmt := s.db.WithContext(ctx).
		Where("company_id = ?", companyID)
	if trimmed := strings.TrimSpace(req.ProjectID); trimmed != "" {
		projectID, err := snowflake.ParseString(trimmed)
		if err != nil || projectID == 0 {
			return domain.ListScheduleResponse{}, domain.ErrInvalidProject
		}
		stmt = stmt.Where("project_id = ?", projectID)
	}
	if req.From != nil {
		stmt = stmt.Where("starts_at >= ?", req.From.UTC())
	}
	if req.To != nil {
		stmt = stmt.Where("starts_at < ?", req.To.UTC())
	}

	var schedules []domain.Schedule
	err := stmt.Order("starts_at asc, id asc").Find(&schedules).Error
	if err != nil {
		return domain.ListScheduleResponse{}, err
	}

	return domain.ListScheduleResponse{Schedules: schedules}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateScheduleRequest) (domain.Schedule, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Schedule{}, domain.ErrInvalidCompany
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Schedule{}, err
	}

	var current domain.Schedule
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&current).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Schedule{}, domain.ErrNotFound
		}
		return domain.Schedule{}, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.TypeID != nil {
		typeID, err := snowflake.ParseString(strings.TrimSpace(*req.TypeID))
		if err != nil || typeID == 0 {
			return domain.Schedule{}, domain.ErrInvalidType
		}
		fields["type_id"] = typeID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Schedule{}, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}

	starts, ends := current.StartsAt, current.EndsAt
	if req.StartsAt != nil {
		if req.StartsAt.IsZero() {
			return domain.Schedule{}, domain.ErrInvalidTimespan
		}
		starts = req.StartsAt.UTC()
		fields["starts_at"] = starts
	}
	if req.EndsAt != nil {
		ends = req.EndsAt
		fields["ends_at"] = req.EndsAt
	}
	if ends != nil && ends.Before(starts) {
		return domain.Schedule{}, domain.ErrInvalidTimespan
	}

	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Notes != nil {
		fields["notes"] = strings.TrimSpace(*req.Notes)
	}

	err = s.db.WithContext(ctx).
		Model(&domain.Schedule{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(fields).Error
	if err != nil {
		return domain.Schedule{}, err
	}

	var updated domain.Schedule
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Take(&updated).Error
	if err != nil {
		return domain.Schedule{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetScheduleRequest) error {
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
		Delete(&domain.Schedule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) ListTypes(ctx context.Context) (domain.ListScheduleTypeResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListScheduleTypeResponse{}, domain.ErrInvalidCompany
	}

	if err := s.ensureTypes(ctx, companyID); err != nil {
		return domain.ListScheduleTypeResponse{}, err
	}

	var types []domain.ScheduleType
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("sort_order asc, name asc").
		Find(&types).Error
	if err != nil {
		return domain.ListScheduleTypeResponse{}, err
	}

	return domain.ListScheduleTypeResponse{Types: types}, nil
}

// ensureTypes seeds the default vocabulary exactly once per company. The
// count check runs inside the insert transaction so two concurrent first
// reads cannot both seed.
func (s *Service) ensureTypes(ctx context.Context, companyID snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.ScheduleType{}).
			Where("company_id = ?", companyID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		types := make([]domain.ScheduleType, 0, len(defaultTypes))
		for i, def := range defaultTypes {
			types = append(types, domain.ScheduleType{
				ID:        s.genID.Generate(),
				CompanyID: companyID,
				Name:      def.Name,
				Color:     def.Color,
				SortOrder: i,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		if err := tx.Create(&types).Error; err != nil {
			return err
		}

		s.metrics.RecordScheduleTypeSeed(ctx, companyID.String())
		s.log.Info("seeded default schedule types",
			zap.String("company_id", companyID.String()),
			zap.Int("count", len(types)),
		)
		return nil
	})
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
