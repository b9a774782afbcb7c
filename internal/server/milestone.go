package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	milestonedomain "github.com/nextlab/researchdesk/internal/milestone/domain"
)

type createMilestoneRequest struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	DueDate   string `json:"due_date"`
}

func (s *Server) CreateMilestone(c *gin.Context) {
	var req createMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dueDate, err := parseOptionalTime(req.DueDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	resp, err := s.milestoneSvc.Create(c.Request.Context(), milestonedomain.CreateMilestoneRequest{
		ProjectID: strings.TrimSpace(req.ProjectID),
		Title:     strings.TrimSpace(req.Title),
		DueDate:   dueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMilestones(c *gin.Context) {
	done, err := parseOptionalBool(c.Query("done"))
	if err != nil {
		AbortWithError(c, newValidationError("done", "invalid_done", "invalid done"))
		return
	}

	resp, err := s.milestoneSvc.List(c.Request.Context(), milestonedomain.ListMilestoneRequest{
		ProjectID: strings.TrimSpace(c.Query("project_id")),
		Done:      done,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateMilestoneRequest struct {
	Title   *string `json:"title"`
	DueDate *string `json:"due_date"`
	Done    *bool   `json:"done"`
}

func (s *Server) UpdateMilestone(c *gin.Context) {
	var req updateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := milestonedomain.UpdateMilestoneRequest{
		ID:    strings.TrimSpace(c.Param("id")),
		Title: req.Title,
		Done:  req.Done,
	}
	if req.DueDate != nil {
		dueDate, err := parseOptionalTime(*req.DueDate, true)
		if err != nil || dueDate == nil {
			AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
			return
		}
		update.DueDate = dueDate
	}

	resp, err := s.milestoneSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteMilestone(c *gin.Context) {
	err := s.milestoneSvc.Delete(c.Request.Context(), milestonedomain.GetMilestoneRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isMilestoneValidationError(err error) bool {
	switch err {
	case milestonedomain.ErrInvalidCompany,
		milestonedomain.ErrInvalidID,
		milestonedomain.ErrInvalidProject,
		milestonedomain.ErrInvalidTitle:
		return true
	default:
		return false
	}
}
