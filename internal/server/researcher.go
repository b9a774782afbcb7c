package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	researcherdomain "github.com/nextlab/researchdesk/internal/researcher/domain"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type createResearcherRequest struct {
	OrganizationID string `json:"organization_id"`
	ProjectID      string `json:"project_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Position       string `json:"position"`
}

func (s *Server) CreateResearcher(c *gin.Context) {
	var req createResearcherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.researcherSvc.Create(c.Request.Context(), researcherdomain.CreateResearcherRequest{
		OrganizationID: strings.TrimSpace(req.OrganizationID),
		ProjectID:      strings.TrimSpace(req.ProjectID),
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Position:       strings.TrimSpace(req.Position),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListResearchers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		ProjectID string `form:"project_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.researcherSvc.List(c.Request.Context(), researcherdomain.ListResearcherRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		ProjectID: strings.TrimSpace(query.ProjectID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetResearcherByID(c *gin.Context) {
	resp, err := s.researcherSvc.GetByID(c.Request.Context(), researcherdomain.GetResearcherRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateResearcherRequest struct {
	OrganizationID *string `json:"organization_id"`
	ProjectID      *string `json:"project_id"`
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Position       *string `json:"position"`
}

func (s *Server) UpdateResearcher(c *gin.Context) {
	var req updateResearcherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.researcherSvc.Update(c.Request.Context(), researcherdomain.UpdateResearcherRequest{
		ID:             strings.TrimSpace(c.Param("id")),
		OrganizationID: req.OrganizationID,
		ProjectID:      req.ProjectID,
		Name:           req.Name,
		Email:          req.Email,
		Position:       req.Position,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteResearcher(c *gin.Context) {
	err := s.researcherSvc.Delete(c.Request.Context(), researcherdomain.GetResearcherRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isResearcherValidationError(err error) bool {
	switch err {
	case researcherdomain.ErrInvalidCompany,
		researcherdomain.ErrInvalidID,
		researcherdomain.ErrInvalidOrganization,
		researcherdomain.ErrInvalidProject,
		researcherdomain.ErrInvalidName:
		return true
	default:
		return false
	}
}
