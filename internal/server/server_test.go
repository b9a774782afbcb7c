package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	budgetitemdomain "github.com/nextlab/researchdesk/internal/budgetitem/domain"
	"github.com/nextlab/researchdesk/internal/session"
	"github.com/nextlab/researchdesk/internal/tenantctx"
	"github.com/stretchr/testify/require"
)

type fakeBudgetItemService struct {
	create func(context.Context, budgetitemdomain.CreateBudgetItemRequest) (budgetitemdomain.BudgetItem, error)
	list   func(context.Context, budgetitemdomain.ListBudgetItemRequest) (budgetitemdomain.ListBudgetItemResponse, error)
	get    func(context.Context, budgetitemdomain.GetBudgetItemRequest) (budgetitemdomain.BudgetItem, error)
}

func (f *fakeBudgetItemService) Create(ctx context.Context, req budgetitemdomain.CreateBudgetItemRequest) (budgetitemdomain.BudgetItem, error) {
	if f.create == nil {
		return budgetitemdomain.BudgetItem{}, nil
	}
	return f.create(ctx, req)
}

func (f *fakeBudgetItemService) List(ctx context.Context, req budgetitemdomain.ListBudgetItemRequest) (budgetitemdomain.ListBudgetItemResponse, error) {
	if f.list == nil {
		return budgetitemdomain.ListBudgetItemResponse{}, nil
	}
	return f.list(ctx, req)
}

func (f *fakeBudgetItemService) GetByID(ctx context.Context, req budgetitemdomain.GetBudgetItemRequest) (budgetitemdomain.BudgetItem, error) {
	if f.get == nil {
		return budgetitemdomain.BudgetItem{}, nil
	}
	return f.get(ctx, req)
}

func (f *fakeBudgetItemService) Update(context.Context, budgetitemdomain.UpdateBudgetItemRequest) (budgetitemdomain.BudgetItem, error) {
	return budgetitemdomain.BudgetItem{}, nil
}

func (f *fakeBudgetItemService) Delete(context.Context, budgetitemdomain.GetBudgetItemRequest) error {
	return nil
}

func newTestServer(t *testing.T, items budgetitemdomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:        engine,
		budgetItemSvc: items,
	}
	srv.registerAPIRoutes()
	return srv
}

func sessionHeader(companyID, memberID snowflake.ID) string {
	return session.Encode(session.Session{
		CompanyID:  companyID,
		MemberID:   memberID,
		MemberName: "pi",
	})
}

func doJSON(t *testing.T, srv *Server, method, path, body, sess string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sess != "" {
		req.Header.Set(session.HeaderName, sess)
	}

	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

type envelopeBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Errors  []struct {
			Field string `json:"field"`
			Code  string `json:"code"`
		} `json:"errors"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var body envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSessionRequiredMissingHeader(t *testing.T) {
	srv := newTestServer(t, &fakeBudgetItemService{})

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/budget-items", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeEnvelope(t, rec)
	require.Equal(t, "unauthorized", body.Error.Type)
}

func TestSessionRequiredScopesContext(t *testing.T) {
	var gotCompany, gotMember snowflake.ID
	fake := &fakeBudgetItemService{
		list: func(ctx context.Context, _ budgetitemdomain.ListBudgetItemRequest) (budgetitemdomain.ListBudgetItemResponse, error) {
			gotCompany, _ = tenantctx.CompanyIDFromContext(ctx)
			gotMember, _ = tenantctx.MemberIDFromContext(ctx)
			return budgetitemdomain.ListBudgetItemResponse{}, nil
		},
	}
	srv := newTestServer(t, fake)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/budget-items", "", sessionHeader(42, 7))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, snowflake.ID(42), gotCompany)
	require.Equal(t, snowflake.ID(7), gotMember)
}

func TestCreateBudgetItemDefaultsPlannedAmount(t *testing.T) {
	var got *budgetitemdomain.CreateBudgetItemRequest
	fake := &fakeBudgetItemService{
		create: func(_ context.Context, req budgetitemdomain.CreateBudgetItemRequest) (budgetitemdomain.BudgetItem, error) {
			got = &req
			return budgetitemdomain.BudgetItem{}, nil
		},
	}
	srv := newTestServer(t, fake)

	body := `{"budget_id":"1","category_id":"2","item_name":"materials"}`
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/budget-items", body, sessionHeader(1, 2))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, got, "service was never invoked")
	require.Equal(t, "1", got.BudgetID)
	require.Equal(t, "2", got.CategoryID)
	require.Equal(t, "materials", got.ItemName)
	require.True(t, got.PlannedAmount.IsZero(), "planned = %s", got.PlannedAmount)
	require.Nil(t, got.ActualAmount)
}

func TestCreateBudgetItemRejectsMalformedAmount(t *testing.T) {
	var called bool
	fake := &fakeBudgetItemService{
		create: func(context.Context, budgetitemdomain.CreateBudgetItemRequest) (budgetitemdomain.BudgetItem, error) {
			called = true
			return budgetitemdomain.BudgetItem{}, nil
		},
	}
	srv := newTestServer(t, fake)

	body := `{"budget_id":"1","category_id":"2","item_name":"materials","planned_amount":"abc"}`
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/budget-items", body, sessionHeader(1, 2))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, called)

	envelope := decodeEnvelope(t, rec)
	require.Equal(t, "validation_error", envelope.Error.Type)
	require.Len(t, envelope.Error.Errors, 1)
	require.Equal(t, "planned_amount", envelope.Error.Errors[0].Field)
	require.Equal(t, "invalid_planned_amount", envelope.Error.Errors[0].Code)
}

func TestErrorEnvelopeValidation(t *testing.T) {
	fake := &fakeBudgetItemService{
		create: func(context.Context, budgetitemdomain.CreateBudgetItemRequest) (budgetitemdomain.BudgetItem, error) {
			return budgetitemdomain.BudgetItem{}, budgetitemdomain.ErrInvalidBudget
		},
	}
	srv := newTestServer(t, fake)

	body := `{"budget_id":"999","category_id":"2","item_name":"materials"}`
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/budget-items", body, sessionHeader(1, 2))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	require.Equal(t, "validation_error", envelope.Error.Type)
	require.Len(t, envelope.Error.Errors, 1)
	require.Equal(t, "invalid_budget", envelope.Error.Errors[0].Code)
	require.Equal(t, "budget", envelope.Error.Errors[0].Field)
}

func TestErrorEnvelopeNotFound(t *testing.T) {
	fake := &fakeBudgetItemService{
		get: func(context.Context, budgetitemdomain.GetBudgetItemRequest) (budgetitemdomain.BudgetItem, error) {
			return budgetitemdomain.BudgetItem{}, budgetitemdomain.ErrNotFound
		},
	}
	srv := newTestServer(t, fake)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/budget-items/123", "", sessionHeader(1, 2))
	require.Equal(t, http.StatusNotFound, rec.Code)

	envelope := decodeEnvelope(t, rec)
	require.Equal(t, "not_found", envelope.Error.Type)
}
