package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	consortiumdomain "github.com/nextlab/researchdesk/internal/consortium/domain"
)

type addConsortiumOrganizationRequest struct {
	ProjectID      string `json:"project_id"`
	OrganizationID string `json:"organization_id"`
	Role           string `json:"role"`
}

func (s *Server) AddConsortiumOrganization(c *gin.Context) {
	var req addConsortiumOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.consortiumSvc.AddOrganization(c.Request.Context(), consortiumdomain.AddOrganizationRequest{
		ProjectID:      strings.TrimSpace(req.ProjectID),
		OrganizationID: strings.TrimSpace(req.OrganizationID),
		Role:           strings.TrimSpace(req.Role),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveConsortiumOrganization(c *gin.Context) {
	err := s.consortiumSvc.RemoveOrganization(c.Request.Context(), consortiumdomain.RemoveRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

type addConsortiumMemberRequest struct {
	ProjectID    string `json:"project_id"`
	ResearcherID string `json:"researcher_id"`
	Role         string `json:"role"`
}

func (s *Server) AddConsortiumMember(c *gin.Context) {
	var req addConsortiumMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.consortiumSvc.AddMember(c.Request.Context(), consortiumdomain.AddMemberRequest{
		ProjectID:    strings.TrimSpace(req.ProjectID),
		ResearcherID: strings.TrimSpace(req.ResearcherID),
		Role:         strings.TrimSpace(req.Role),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveConsortiumMember(c *gin.Context) {
	err := s.consortiumSvc.RemoveMember(c.Request.Context(), consortiumdomain.RemoveRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListConsortium(c *gin.Context) {
	resp, err := s.consortiumSvc.List(c.Request.Context(), consortiumdomain.ListConsortiumRequest{
		ProjectID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isConsortiumValidationError(err error) bool {
	switch err {
	case consortiumdomain.ErrInvalidCompany,
		consortiumdomain.ErrInvalidID,
		consortiumdomain.ErrInvalidProject,
		consortiumdomain.ErrInvalidOrganization,
		consortiumdomain.ErrInvalidResearcher,
		consortiumdomain.ErrInvalidRole:
		return true
	default:
		return false
	}
}
