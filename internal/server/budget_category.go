package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	budgetcategorydomain "github.com/nextlab/researchdesk/internal/budgetcategory/domain"
)

type createBudgetCategoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

func (s *Server) CreateBudgetCategory(c *gin.Context) {
	var req createBudgetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.budgetCategorySvc.Create(c.Request.Context(), budgetcategorydomain.CreateBudgetCategoryRequest{
		Name:      strings.TrimSpace(req.Name),
		SortOrder: req.SortOrder,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBudgetCategories(c *gin.Context) {
	resp, err := s.budgetCategorySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateBudgetCategoryRequest struct {
	Name      *string `json:"name"`
	SortOrder *int    `json:"sort_order"`
}

func (s *Server) UpdateBudgetCategory(c *gin.Context) {
	var req updateBudgetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.budgetCategorySvc.Update(c.Request.Context(), budgetcategorydomain.UpdateBudgetCategoryRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBudgetCategory(c *gin.Context) {
	err := s.budgetCategorySvc.Delete(c.Request.Context(), budgetcategorydomain.GetBudgetCategoryRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isBudgetCategoryValidationError(err error) bool {
	switch err {
	case budgetcategorydomain.ErrInvalidCompany,
		budgetcategorydomain.ErrInvalidID,
		budgetcategorydomain.ErrInvalidName:
		return true
	default:
		return false
	}
}
