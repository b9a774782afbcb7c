package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	kpidomain "github.com/nextlab/researchdesk/internal/kpi/domain"
)

type createKPIRequest struct {
	ProjectID    string  `json:"project_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	TargetValue  string  `json:"target_value"`
	CurrentValue *string `json:"current_value"`
}

func (s *Server) CreateKPI(c *gin.Context) {
	var req createKPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	target, err := parseDecimal(req.TargetValue)
	if err != nil {
		AbortWithError(c, newValidationError("target_value", "invalid_target_value", "invalid target_value"))
		return
	}
	current, err := parseOptionalDecimal(req.CurrentValue)
	if err != nil {
		AbortWithError(c, newValidationError("current_value", "invalid_current_value", "invalid current_value"))
		return
	}

	resp, err := s.kpiSvc.Create(c.Request.Context(), kpidomain.CreateKPIRequest{
		ProjectID:    strings.TrimSpace(req.ProjectID),
		Name:         strings.TrimSpace(req.Name),
		Unit:         strings.TrimSpace(req.Unit),
		TargetValue:  target,
		CurrentValue: current,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListKPIs(c *gin.Context) {
	resp, err := s.kpiSvc.List(c.Request.Context(), kpidomain.ListKPIRequest{
		ProjectID: strings.TrimSpace(c.Query("project_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateKPIRequest struct {
	Name         *string `json:"name"`
	Unit         *string `json:"unit"`
	TargetValue  *string `json:"target_value"`
	CurrentValue *string `json:"current_value"`
}

func (s *Server) UpdateKPI(c *gin.Context) {
	var req updateKPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	target, err := parseOptionalDecimal(req.TargetValue)
	if err != nil {
		AbortWithError(c, newValidationError("target_value", "invalid_target_value", "invalid target_value"))
		return
	}
	current, err := parseOptionalDecimal(req.CurrentValue)
	if err != nil {
		AbortWithError(c, newValidationError("current_value", "invalid_current_value", "invalid current_value"))
		return
	}

	resp, err := s.kpiSvc.Update(c.Request.Context(), kpidomain.UpdateKPIRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		Name:         req.Name,
		Unit:         req.Unit,
		TargetValue:  target,
		CurrentValue: current,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteKPI(c *gin.Context) {
	err := s.kpiSvc.Delete(c.Request.Context(), kpidomain.GetKPIRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isKPIValidationError(err error) bool {
	switch err {
	case kpidomain.ErrInvalidCompany,
		kpidomain.ErrInvalidID,
		kpidomain.ErrInvalidProject,
		kpidomain.ErrInvalidName,
		kpidomain.ErrInvalidValue:
		return true
	default:
		return false
	}
}
