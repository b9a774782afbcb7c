package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	researchlogdomain "github.com/nextlab/researchdesk/internal/researchlog/domain"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type createResearchLogRequest struct {
	ProjectID string `json:"project_id"`
	LogDate   string `json:"log_date"`
	Content   string `json:"content"`
}

func (s *Server) CreateResearchLog(c *gin.Context) {
	var req createResearchLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	logDate, err := parseOptionalTime(req.LogDate, false)
	if err != nil || logDate == nil {
		AbortWithError(c, newValidationError("log_date", "invalid_log_date", "invalid log_date"))
		return
	}

	resp, err := s.researchLogSvc.Create(c.Request.Context(), researchlogdomain.CreateResearchLogRequest{
		ProjectID: strings.TrimSpace(req.ProjectID),
		LogDate:   *logDate,
		Content:   req.Content,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListResearchLogs(c *gin.Context) {
	var query struct {
		pagination.Pagination
		ProjectID string `form:"project_id"`
		MemberID  string `form:"member_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.researchLogSvc.List(c.Request.Context(), researchlogdomain.ListResearchLogRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		ProjectID: strings.TrimSpace(query.ProjectID),
		MemberID:  strings.TrimSpace(query.MemberID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetResearchLogByID(c *gin.Context) {
	resp, err := s.researchLogSvc.GetByID(c.Request.Context(), researchlogdomain.GetResearchLogRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateResearchLogRequest struct {
	LogDate *string `json:"log_date"`
	Content *string `json:"content"`
}

func (s *Server) UpdateResearchLog(c *gin.Context) {
	var req updateResearchLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := researchlogdomain.UpdateResearchLogRequest{
		ID:      strings.TrimSpace(c.Param("id")),
		Content: req.Content,
	}
	if req.LogDate != nil {
		logDate, err := parseOptionalTime(*req.LogDate, false)
		if err != nil || logDate == nil {
			AbortWithError(c, newValidationError("log_date", "invalid_log_date", "invalid log_date"))
			return
		}
		update.LogDate = logDate
	}

	resp, err := s.researchLogSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteResearchLog(c *gin.Context) {
	err := s.researchLogSvc.Delete(c.Request.Context(), researchlogdomain.GetResearchLogRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isResearchLogValidationError(err error) bool {
	switch err {
	case researchlogdomain.ErrInvalidCompany,
		researchlogdomain.ErrInvalidMember,
		researchlogdomain.ErrInvalidID,
		researchlogdomain.ErrInvalidProject,
		researchlogdomain.ErrInvalidDate,
		researchlogdomain.ErrInvalidContent:
		return true
	default:
		return false
	}
}
