package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	organizationdomain "github.com/nextlab/researchdesk/internal/organization/domain"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type createOrganizationRequest struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	Type         string `json:"type"`
	ContactEmail string `json:"contact_email"`
}

func (s *Server) CreateOrganization(c *gin.Context) {
	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.organizationSvc.Create(c.Request.Context(), organizationdomain.CreateOrganizationRequest{
		Name:         strings.TrimSpace(req.Name),
		Code:         strings.TrimSpace(req.Code),
		Type:         strings.TrimSpace(req.Type),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrganizations(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Type string `form:"type"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.organizationSvc.List(c.Request.Context(), organizationdomain.ListOrganizationRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Type:      strings.TrimSpace(query.Type),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrganizationByID(c *gin.Context) {
	resp, err := s.organizationSvc.GetByID(c.Request.Context(), organizationdomain.GetOrganizationRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateOrganizationRequest struct {
	Name         *string `json:"name"`
	Code         *string `json:"code"`
	Type         *string `json:"type"`
	ContactEmail *string `json:"contact_email"`
}

func (s *Server) UpdateOrganization(c *gin.Context) {
	var req updateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.organizationSvc.Update(c.Request.Context(), organizationdomain.UpdateOrganizationRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		Name:         req.Name,
		Code:         req.Code,
		Type:         req.Type,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOrganization(c *gin.Context) {
	err := s.organizationSvc.Delete(c.Request.Context(), organizationdomain.GetOrganizationRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isOrganizationValidationError(err error) bool {
	switch err {
	case organizationdomain.ErrInvalidCompany,
		organizationdomain.ErrInvalidID,
		organizationdomain.ErrInvalidName,
		organizationdomain.ErrInvalidType:
		return true
	default:
		return false
	}
}
