package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	projectdomain "github.com/nextlab/researchdesk/internal/project/domain"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type createProjectRequest struct {
	InvestigatorID string         `json:"investigator_id"`
	Title          string         `json:"title"`
	Code           string         `json:"code"`
	Description    string         `json:"description"`
	Status         string         `json:"status"`
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	Metadata       map[string]any `json:"metadata"`
}

func (s *Server) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(req.StartDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
		return
	}
	endDate, err := parseOptionalTime(req.EndDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "invalid end_date"))
		return
	}

	resp, err := s.projectSvc.Create(c.Request.Context(), projectdomain.CreateProjectRequest{
		InvestigatorID: strings.TrimSpace(req.InvestigatorID),
		Title:          strings.TrimSpace(req.Title),
		Code:           strings.TrimSpace(req.Code),
		Description:    strings.TrimSpace(req.Description),
		Status:         strings.TrimSpace(req.Status),
		StartDate:      startDate,
		EndDate:        endDate,
		Metadata:       req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProjects(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status         string `form:"status"`
		InvestigatorID string `form:"investigator_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.projectSvc.List(c.Request.Context(), projectdomain.ListProjectRequest{
		PageToken:      query.PageToken,
		PageSize:       int32(query.PageSize),
		Status:         strings.TrimSpace(query.Status),
		InvestigatorID: strings.TrimSpace(query.InvestigatorID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProjectByID(c *gin.Context) {
	resp, err := s.projectSvc.GetByID(c.Request.Context(), projectdomain.GetProjectRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateProjectRequest struct {
	InvestigatorID *string        `json:"investigator_id"`
	Title          *string        `json:"title"`
	Code           *string        `json:"code"`
	Description    *string        `json:"description"`
	Status         *string        `json:"status"`
	StartDate      *string        `json:"start_date"`
	EndDate        *string        `json:"end_date"`
	Metadata       map[string]any `json:"metadata"`
}

func (s *Server) UpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := projectdomain.UpdateProjectRequest{
		ID:             strings.TrimSpace(c.Param("id")),
		InvestigatorID: req.InvestigatorID,
		Title:          req.Title,
		Code:           req.Code,
		Description:    req.Description,
		Status:         req.Status,
		Metadata:       req.Metadata,
	}
	if req.StartDate != nil {
		startDate, err := parseOptionalTime(*req.StartDate, false)
		if err != nil || startDate == nil {
			AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
			return
		}
		update.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseOptionalTime(*req.EndDate, true)
		if err != nil || endDate == nil {
			AbortWithError(c, newValidationError("end_date", "invalid_end_date", "invalid end_date"))
			return
		}
		update.EndDate = endDate
	}

	resp, err := s.projectSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProject(c *gin.Context) {
	err := s.projectSvc.Delete(c.Request.Context(), projectdomain.GetProjectRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isProjectValidationError(err error) bool {
	switch err {
	case projectdomain.ErrInvalidCompany,
		projectdomain.ErrInvalidID,
		projectdomain.ErrInvalidInvestigator,
		projectdomain.ErrInvalidTitle,
		projectdomain.ErrInvalidStatus,
		projectdomain.ErrInvalidDateRange:
		return true
	default:
		return false
	}
}
