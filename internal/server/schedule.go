package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	scheduledomain "github.com/nextlab/researchdesk/internal/schedule/domain"
)

type createScheduleRequest struct {
	ProjectID string `json:"project_id"`
	TypeID    string `json:"type_id"`
	Title     string `json:"title"`
	StartsAt  string `json:"starts_at"`
	EndsAt    string `json:"ends_at"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
}

func (s *Server) CreateSchedule(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startsAt, err := parseOptionalTime(req.StartsAt, false)
	if err != nil || startsAt == nil {
		AbortWithError(c, newValidationError("starts_at", "invalid_starts_at", "invalid starts_at"))
		return
	}
	endsAt, err := parseOptionalTime(req.EndsAt, true)
	if err != nil {
		AbortWithError(c, newValidationError("ends_at", "invalid_ends_at", "invalid ends_at"))
		return
	}

	resp, err := s.scheduleSvc.Create(c.Request.Context(), scheduledomain.CreateScheduleRequest{
		ProjectID: strings.TrimSpace(req.ProjectID),
		TypeID:    strings.TrimSpace(req.TypeID),
		Title:     strings.TrimSpace(req.Title),
		StartsAt:  *startsAt,
		EndsAt:    endsAt,
		Location:  strings.TrimSpace(req.Location),
		Notes:     strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSchedules(c *gin.Context) {
	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.scheduleSvc.List(c.Request.Context(), scheduledomain.ListScheduleRequest{
		ProjectID: strings.TrimSpace(c.Query("project_id")),
		From:      from,
		To:        to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateScheduleRequest struct {
	TypeID   *string `json:"type_id"`
	Title    *string `json:"title"`
	StartsAt *string `json:"starts_at"`
	EndsAt   *string `json:"ends_at"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

func (s *Server) UpdateSchedule(c *gin.Context) {
	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := scheduledomain.UpdateScheduleRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		TypeID:   req.TypeID,
		Title:    req.Title,
		Location: req.Location,
		Notes:    req.Notes,
	}
	if req.StartsAt != nil {
		startsAt, err := parseOptionalTime(*req.StartsAt, false)
		if err != nil || startsAt == nil {
			AbortWithError(c, newValidationError("starts_at", "invalid_starts_at", "invalid starts_at"))
			return
		}
		update.StartsAt = startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := parseOptionalTime(*req.EndsAt, true)
		if err != nil || endsAt == nil {
			AbortWithError(c, newValidationError("ends_at", "invalid_ends_at", "invalid ends_at"))
			return
		}
		update.EndsAt = endsAt
	}

	resp, err := s.scheduleSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSchedule(c *gin.Context) {
	err := s.scheduleSvc.Delete(c.Request.Context(), scheduledomain.GetScheduleRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListScheduleTypes(c *gin.Context) {
	resp, err := s.scheduleSvc.ListTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isScheduleValidationError(err error) bool {
	switch err {
	case scheduledomain.ErrInvalidCompany,
		scheduledomain.ErrInvalidID,
		scheduledomain.ErrInvalidProject,
		scheduledomain.ErrInvalidType,
		scheduledomain.ErrInvalidTitle,
		scheduledomain.ErrInvalidTimespan:
		return true
	default:
		return false
	}
}
