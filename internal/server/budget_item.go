package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	budgetitemdomain "github.com/nextlab/researchdesk/internal/budgetitem/domain"
	"github.com/nextlab/researchdesk/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type createBudgetItemRequest struct {
	BudgetID      string  `json:"budget_id"`
	CategoryID    string  `json:"category_id"`
	ItemName      string  `json:"item_name"`
	PlannedAmount *string `json:"planned_amount"`
	ActualAmount  *string `json:"actual_amount"`
	Status        string  `json:"status"`
}

func (s *Server) CreateBudgetItem(c *gin.Context) {
	var req createBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// planned_amount may be omitted; the item then starts unfunded.
	planned, err := parseOptionalDecimal(req.PlannedAmount)
	if err != nil {
		AbortWithError(c, newValidationError("planned_amount", "invalid_planned_amount", "invalid planned_amount"))
		return
	}
	plannedAmount := decimal.Zero
	if planned != nil {
		plannedAmount = *planned
	}
	actual, err := parseOptionalDecimal(req.ActualAmount)
	if err != nil {
		AbortWithError(c, newValidationError("actual_amount", "invalid_actual_amount", "invalid actual_amount"))
		return
	}

	resp, err := s.budgetItemSvc.Create(c.Request.Context(), budgetitemdomain.CreateBudgetItemRequest{
		BudgetID:      strings.TrimSpace(req.BudgetID),
		CategoryID:    strings.TrimSpace(req.CategoryID),
		ItemName:      strings.TrimSpace(req.ItemName),
		PlannedAmount: plannedAmount,
		ActualAmount:  actual,
		Status:        strings.TrimSpace(req.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBudgetItems(c *gin.Context) {
	var query struct {
		pagination.Pagination
		BudgetID string `form:"budget_id"`
		Status   string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.budgetItemSvc.List(c.Request.Context(), budgetitemdomain.ListBudgetItemRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		BudgetID:  strings.TrimSpace(query.BudgetID),
		Status:    strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBudgetItemByID(c *gin.Context) {
	resp, err := s.budgetItemSvc.GetByID(c.Request.Context(), budgetitemdomain.GetBudgetItemRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateBudgetItemRequest struct {
	CategoryID    *string `json:"category_id"`
	ItemName      *string `json:"item_name"`
	PlannedAmount *string `json:"planned_amount"`
	ActualAmount  *string `json:"actual_amount"`
	Status        *string `json:"status"`
}

func (s *Server) UpdateBudgetItem(c *gin.Context) {
	var req updateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	planned, err := parseOptionalDecimal(req.PlannedAmount)
	if err != nil {
		AbortWithError(c, newValidationError("planned_amount", "invalid_planned_amount", "invalid planned_amount"))
		return
	}
	actual, err := parseOptionalDecimal(req.ActualAmount)
	if err != nil {
		AbortWithError(c, newValidationError("actual_amount", "invalid_actual_amount", "invalid actual_amount"))
		return
	}

	resp, err := s.budgetItemSvc.Update(c.Request.Context(), budgetitemdomain.UpdateBudgetItemRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		CategoryID:    req.CategoryID,
		ItemName:      req.ItemName,
		PlannedAmount: planned,
		ActualAmount:  actual,
		Status:        req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBudgetItem(c *gin.Context) {
	err := s.budgetItemSvc.Delete(c.Request.Context(), budgetitemdomain.GetBudgetItemRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isBudgetItemValidationError(err error) bool {
	switch err {
	case budgetitemdomain.ErrInvalidCompany,
		budgetitemdomain.ErrInvalidID,
		budgetitemdomain.ErrInvalidBudget,
		budgetitemdomain.ErrInvalidCategory,
		budgetitemdomain.ErrInvalidName,
		budgetitemdomain.ErrInvalidAmount,
		budgetitemdomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
