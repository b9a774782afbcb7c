package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	investigatordomain "github.com/nextlab/researchdesk/internal/investigator/domain"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type createInvestigatorRequest struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialty      string `json:"specialty"`
}

func (s *Server) CreateInvestigator(c *gin.Context) {
	var req createInvestigatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.investigatorSvc.Create(c.Request.Context(), investigatordomain.CreateInvestigatorRequest{
		OrganizationID: strings.TrimSpace(req.OrganizationID),
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Specialty:      strings.TrimSpace(req.Specialty),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvestigators(c *gin.Context) {
	var query struct {
		pagination.Pagination
		OrganizationID string `form:"organization_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.investigatorSvc.List(c.Request.Context(), investigatordomain.ListInvestigatorRequest{
		PageToken:      query.PageToken,
		PageSize:       int32(query.PageSize),
		OrganizationID: strings.TrimSpace(query.OrganizationID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvestigatorByID(c *gin.Context) {
	resp, err := s.investigatorSvc.GetByID(c.Request.Context(), investigatordomain.GetInvestigatorRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateInvestigatorRequest struct {
	OrganizationID *string `json:"organization_id"`
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Specialty      *string `json:"specialty"`
}

func (s *Server) UpdateInvestigator(c *gin.Context) {
	var req updateInvestigatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.investigatorSvc.Update(c.Request.Context(), investigatordomain.UpdateInvestigatorRequest{
		ID:             strings.TrimSpace(c.Param("id")),
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Email:          req.Email,
		Specialty:      req.Specialty,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvestigator(c *gin.Context) {
	err := s.investigatorSvc.Delete(c.Request.Context(), investigatordomain.GetInvestigatorRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isInvestigatorValidationError(err error) bool {
	switch err {
	case investigatordomain.ErrInvalidCompany,
		investigatordomain.ErrInvalidID,
		investigatordomain.ErrInvalidOrganization,
		investigatordomain.ErrInvalidName:
		return true
	default:
		return false
	}
}
