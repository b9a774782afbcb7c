package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	budgetdomain "github.com/nextlab/researchdesk/internal/budget/domain"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
)

type createBudgetRequest struct {
	ProjectID   string `json:"project_id"`
	FiscalYear  int    `json:"fiscal_year"`
	TotalBudget string `json:"total_budget"`
	Status      string `json:"status"`
}

func (s *Server) CreateBudget(c *gin.Context) {
	var req createBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	total, err := parseDecimal(req.TotalBudget)
	if err != nil {
		AbortWithError(c, newValidationError("total_budget", "invalid_total_budget", "invalid total_budget"))
		return
	}

	resp, err := s.budgetSvc.Create(c.Request.Context(), budgetdomain.CreateBudgetRequest{
		ProjectID:   strings.TrimSpace(req.ProjectID),
		FiscalYear:  req.FiscalYear,
		TotalBudget: total,
		Status:      strings.TrimSpace(req.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBudgets(c *gin.Context) {
	var query struct {
		pagination.Pagination
		ProjectID  string `form:"project_id"`
		FiscalYear int    `form:"fiscal_year"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.budgetSvc.List(c.Request.Context(), budgetdomain.ListBudgetRequest{
		PageToken:  query.PageToken,
		PageSize:   int32(query.PageSize),
		ProjectID:  strings.TrimSpace(query.ProjectID),
		FiscalYear: query.FiscalYear,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBudgetByID(c *gin.Context) {
	resp, err := s.budgetSvc.GetByID(c.Request.Context(), budgetdomain.GetBudgetRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateBudgetRequest struct {
	TotalBudget *string `json:"total_budget"`
	Status      *string `json:"status"`
}

func (s *Server) UpdateBudget(c *gin.Context) {
	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	total, err := parseOptionalDecimal(req.TotalBudget)
	if err != nil {
		AbortWithError(c, newValidationError("total_budget", "invalid_total_budget", "invalid total_budget"))
		return
	}

	resp, err := s.budgetSvc.Update(c.Request.Context(), budgetdomain.UpdateBudgetRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		TotalBudget: total,
		Status:      req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBudget(c *gin.Context) {
	err := s.budgetSvc.Delete(c.Request.Context(), budgetdomain.GetBudgetRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isBudgetValidationError(err error) bool {
	switch err {
	case budgetdomain.ErrInvalidCompany,
		budgetdomain.ErrInvalidID,
		budgetdomain.ErrInvalidProject,
		budgetdomain.ErrInvalidFiscalYear,
		budgetdomain.ErrInvalidAmount:
		return true
	default:
		return false
	}
}
