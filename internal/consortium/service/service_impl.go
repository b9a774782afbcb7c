package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nextlab/researchdesk/internal/consortium/domain"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/nextlab/researchdesk/pkg/db"
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
		log:   p.Log.Named("consortium.service"),
		genID: p.GenID,
	}
}

func (s *Service) AddOrganization(ctx context.Context, req domain.AddOrganizationRequest) (domain.ConsortiumOrganization, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ConsortiumOrganization{}, domain.ErrInvalidCompany
	}

	projectID, err := parseRef(req.ProjectID, domain.ErrInvalidProject)
	if err != nil {
		return domain.ConsortiumOrganization{}, err
	}
	orgID, err := parseRef(req.OrganizationID, domain.ErrInvalidOrganization)
	if err != nil {
		return domain.ConsortiumOrganization{}, err
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.RolePartner
	}
	if !domain.ValidRole(role) {
		return domain.ConsortiumOrganization{}, domain.ErrInvalidRole
	}

	var count int64
	err = s.db.WithContext(ctx).
		Model(&domain.ConsortiumOrganization{}).
		Where("company_id = ? AND project_id = ? AND organization_id = ?", companyID, projectID, orgID).
		Count(&count).Error
	if err != nil {
		return domain.ConsortiumOrganization{}, err
	}
	if count > 0 {
		return domain.ConsortiumOrganization{}, domain.ErrAlreadyAttached
	}

	now := time.Now().UTC()
	link := domain.ConsortiumOrganization{
		ID:             s.genID.Generate(),
		CompanyID:      companyID,
		ProjectID:      projectID,
		OrganizationID: orgID,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		// The unique index backstops the count check under concurrent adds.
		if db.IsDuplicateKeyErr(err) {
			return domain.ConsortiumOrganization{}, domain.ErrAlreadyAttached
		}
		return domain.ConsortiumOrganization{}, err
	}

	return link, nil
}

func (s *Service) RemoveOrganization(ctx context.Context, req domain.RemoveRequest) error {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidCompany
	}

	id, err := parseRef(req.ID, domain.ErrInvalidID)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.ConsortiumOrganization{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) AddMember(ctx context.Context, req domain.AddMemberRequest) (domain.ConsortiumMember, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ConsortiumMember{}, domain.ErrInvalidCompany
	}

	projectID, err := parseRef(req.ProjectID, domain.ErrInvalidProject)
	if err != nil {
		return domain.ConsortiumMember{}, err
	}
	researcherID, err := parseRef(req.ResearcherID, domain.ErrInvalidResearcher)
	if err != nil {
		return domain.ConsortiumMember{}, err
	}

	var count int64
	err = s.db.WithContext(ctx).
		Model(&domain.ConsortiumMember{}).
		Where("company_id = ? AND project_id = ? AND researcher_id = ?", companyID, projectID, researcherID).
		Count(&count).Error
	if err != nil {
		return domain.ConsortiumMember{}, err
	}
	if count > 0 {
		return domain.ConsortiumMember{}, domain.ErrAlreadyAttached
	}

	now := time.Now().UTC()
	member := domain.ConsortiumMember{
		ID:           s.genID.Generate(),
		CompanyID:    companyID,
		ProjectID:    projectID,
		ResearcherID: researcherID,
		Role:         strings.TrimSpace(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ConsortiumMember{}, domain.ErrAlreadyAttached
		}
		return domain.ConsortiumMember{}, err
	}

	return member, nil
}

func (s *Service) RemoveMember(ctx context.Context, req domain.RemoveRequest) error {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidCompany
	}

	id, err := parseRef(req.ID, domain.ErrInvalidID)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&domain.ConsortiumMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListConsortiumRequest) (domain.ListConsortiumResponse, error) {
	companyID, ok := tenantctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListConsortiumResponse{}, domain.ErrInvalidCompany
	}

	projectID, err := parseRef(req.ProjectID, domain.ErrInvalidProject)
	if err != nil {
		return domain.ListConsortiumResponse{}, err
	}

	var orgs []domain.ConsortiumOrganization
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND project_id = ?", companyID, projectID).
		Order("created_at asc, id asc").
		Find(&orgs).Error
	if err != nil {
		return domain.ListConsortiumResponse{}, err
	}

	var members []domain.ConsortiumMember
	err = s.db.WithContext(ctx).
		Where("company_id = ? AND project_id = ?", companyID, projectID).
		Order("created_at asc, id asc").
		Find(&members).Error
	if err != nil {
		return domain.ListConsortiumResponse{}, err
	}

	return domain.ListConsortiumResponse{Organizations: orgs, Members: members}, nil
}

func parseRef(value string, errInvalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, errInvalid
	}
	return id, nil
}
