package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	announcementdomain "github.com/nextlab/researchdesk/internal/announcement/domain"
	budgetdomain "github.com/nextlab/researchdesk/internal/budget/domain"
	budgetcategorydomain "github.com/nextlab/researchdesk/internal/budgetcategory/domain"
	budgetitemdomain "github.com/nextlab/researchdesk/internal/budgetitem/domain"
	consortiumdomain "github.com/nextlab/researchdesk/internal/consortium/domain"
	investigatordomain "github.com/nextlab/researchdesk/internal/investigator/domain"
	kpidomain "github.com/nextlab/researchdesk/internal/kpi/domain"
	milestonedomain "github.com/nextlab/researchdesk/internal/milestone/domain"
	organizationdomain "github.com/nextlab/researchdesk/internal/organization/domain"
	projectdomain "github.com/nextlab/researchdesk/internal/project/domain"
	"github.com/nextlab/researchdesk/internal/ratelimit"
	researcherdomain "github.com/nextlab/researchdesk/internal/researcher/domain"
	researchlogdomain "github.com/nextlab/researchdesk/internal/researchlog/domain"
	scheduledomain "github.com/nextlab/researchdesk/internal/schedule/domain"
	"github.com/nextlab/researchdesk/internal/session"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		var rlErr *researchlogdomain.RateLimitError
		if errors.As(lastErr.Err, &rlErr) {
			c.Header("Retry-After", strconv.Itoa(ratelimit.RetryAfterSeconds(rlErr.RetryAfter)))
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	var rlErr *researchlogdomain.RateLimitError
	if errors.As(err, &rlErr) {
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, session.ErrMissing),
		errors.Is(err, session.ErrInvalid):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, researchlogdomain.ErrNotOwner):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, consortiumdomain.ErrAlreadyAttached):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isOrganizationValidationError(err),
		isInvestigatorValidationError(err),
		isResearcherValidationError(err),
		isProjectValidationError(err),
		isBudgetValidationError(err),
		isBudgetCategoryValidationError(err),
		isBudgetItemValidationError(err),
		isKPIValidationError(err),
		isMilestoneValidationError(err),
		isConsortiumValidationError(err),
		isScheduleValidationError(err),
		isAnnouncementValidationError(err),
		isResearchLogValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, organizationdomain.ErrNotFound),
		errors.Is(err, investigatordomain.ErrNotFound),
		errors.Is(err, researcherdomain.ErrNotFound),
		errors.Is(err, projectdomain.ErrNotFound),
		errors.Is(err, budgetdomain.ErrNotFound),
		errors.Is(err, budgetcategorydomain.ErrNotFound),
		errors.Is(err, budgetitemdomain.ErrNotFound),
		errors.Is(err, kpidomain.ErrNotFound),
		errors.Is(err, milestonedomain.ErrNotFound),
		errors.Is(err, consortiumdomain.ErrNotFound),
		errors.Is(err, scheduledomain.ErrNotFound),
		errors.Is(err, announcementdomain.ErrNotFound),
		errors.Is(err, researchlogdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	status, payload := mapError(err)
	return payload.Type, strconv.Itoa(status)
}
