package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "opportunityrisks/internal/errors"
	"opportunityrisks/internal/models"
	"opportunityrisks/internal/services"
)

// --- mock opportunity service ---

type mockOpportunityService struct {
	listOpportunitiesFn    func(ctx context.Context) ([]models.Opportunity, error)
	getOpportunityFn       func(ctx context.Context, id string) (*models.Opportunity, error)
	refreshOpportunitiesFn func(ctx context.Context) (int, error)
}

func (m *mockOpportunityService) ListOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	if m.listOpportunitiesFn != nil {
		return m.listOpportunitiesFn(ctx)
	}
	return []models.Opportunity{}, nil
}

func (m *mockOpportunityService) GetOpportunity(ctx context.Context, id string) (*models.Opportunity, error) {
	if m.getOpportunityFn != nil {
		return m.getOpportunityFn(ctx, id)
	}
	return &models.Opportunity{ID: id}, nil
}

func (m *mockOpportunityService) RefreshOpportunities(ctx context.Context) (int, error) {
	if m.refreshOpportunitiesFn != nil {
		return m.refreshOpportunitiesFn(ctx)
	}
	return 0, nil
}

var _ services.OpportunityServicer = (*mockOpportunityService)(nil)

// --- mock resolver ---

type mockRiskResolver struct {
	resolveFn func(ctx context.Context, opportunityID string) ([]models.Risk, services.ResolveTrace)
}

func (m *mockRiskResolver) Resolve(ctx context.Context, opportunityID string) ([]models.Risk, services.ResolveTrace) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, opportunityID)
	}
	return []models.Risk{}, services.ResolveTrace{OpportunityID: opportunityID}
}

var _ services.RiskResolver = (*mockRiskResolver)(nil)

func setupOpportunityRouter(handler *OpportunityHandler) *gin.Engine {
	r := gin.New()
	r.GET("/opportunities", handler.GetOpportunities)
	r.POST("/opportunities/refresh", handler.RefreshOpportunities)
	r.GET("/opportunities/:id", handler.GetOpportunity)
	r.GET("/opportunities/:id/risks", handler.GetOpportunityRisks)
	return r
}

func TestOpportunityHandler_GetOpportunities(t *testing.T) {
	t.Run("returns 200 with opportunities", func(t *testing.T) {
		svc := &mockOpportunityService{
			listOpportunitiesFn: func(_ context.Context) ([]models.Opportunity, error) {
				return []models.Opportunity{
					{ID: "OPP1", Name: "Widget Deal", Currency: "EUR", ExpectedRevenueAmount: decimal.RequireFromString("150000.50")},
					{ID: "OPP2", Name: "Gadget Deal", Currency: "USD"},
				}, nil
			},
		}
		r := setupOpportunityRouter(NewOpportunityHandler(svc, &mockRiskResolver{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/opportunities", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		opps := parseJSON(t, rec)["opportunities"].([]interface{})
		if len(opps) != 2 {
			t.Fatalf("expected 2 opportunities, got %d", len(opps))
		}
		first := opps[0].(map[string]interface{})
		if first["name"] != "Widget Deal" {
			t.Errorf("expected Widget Deal, got %v", first["name"])
		}
		if first["expected_revenue_amount"] != "150000.5" {
			t.Errorf("expected decimal string 150000.5, got %v", first["expected_revenue_amount"])
		}
	})

	t.Run("returns 502 with upstream message", func(t *testing.T) {
		svc := &mockOpportunityService{
			listOpportunitiesFn: func(_ context.Context) ([]models.Opportunity, error) {
				return nil, apperrors.Passthrough(apperrors.ErrUpstreamUnavailable, errors.New("unexpected status 503"))
			},
		}
		r := setupOpportunityRouter(NewOpportunityHandler(svc, &mockRiskResolver{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/opportunities", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "UPSTREAM_UNAVAILABLE")
		msg := result["error"].(map[string]interface{})["message"].(string)
		if msg == apperrors.ErrUpstreamUnavailable.Message {
			t.Errorf("expected upstream detail in message, got %q", msg)
		}
	})

	t.Run("returns 502 on empty upstream", func(t *testing.T) {
		svc := &mockOpportunityService{
			listOpportunitiesFn: func(_ context.Context) ([]models.Opportunity, error) {
				return nil, apperrors.ErrUpstreamEmpty
			},
		}
		r := setupOpportunityRouter(NewOpportunityHandler(svc, &mockRiskResolver{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/opportunities", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UPSTREAM_EMPTY")
	})
}

func TestOpportunityHandler_GetOpportunity(t *testing.T) {
	t.Run("returns 200 with opportunity", func(t *testing.T) {
		var gotID string
		svc := &mockOpportunityService{
			getOpportunityFn: func(_ context.Context, id string) (*models.Opportunity, error) {
				gotID = id
				return &models.Opportunity{ID: id, Name: "Widget Deal"}, nil
			},
		}
		r := setupOpportunityRouter(NewOpportunityHandler(svc, &mockRiskResolver{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/opportunities/00163E03-A070", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotID != "00163E03-A070" {
			t.Errorf("expected id passed through, got %q", gotID)
		}
		opp := parseJSON(t, rec)["opportunity"].(map[string]interface{})
		if opp["name"] != "Widget Deal" {
			t.Errorf("expected Widget Deal, got %v", opp["name"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockOpportunityService{
			getOpportunityFn: func(_ context.Context, _ string) (*models.Opportunity, error) {
				return nil, apperrors.ErrOpportunityNotFound
			},
		}
		r := setupOpportunityRouter(NewOpportunityHandler(svc, &mockRiskResolver{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/opportunities/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "OPPORTUNITY_NOT_FOUND")
	})

	t.Run("returns 400 when id exceeds column width", func(t *testing.T) {
		called := false
		svc := &mockOpportunityService{
			getOpportunityFn: func(_ context.Context, _ string) (*models.Opportunity, error) {
				called = true
				return nil, nil
			},
		}
		r := setupOpportunityRouter(NewOpportunityHandler(svc, &mockRiskResolver{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/opportunities/"+strings.Repeat("A", 101), "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		if called {
			t.Error("service should not be called for an oversized id")
		}

		rec = doRequest(r, "GET", "/opportunities/"+strings.Repeat("A", 100), "")
		if rec.Code == http.StatusBadRequest {
			t.Errorf("expected a 100 character id to be accepted")
		}
	})
}

func TestOpportunityHandler_GetOpportunityRisks(t *testing.T) {
	resolver := &mockRiskResolver{
		resolveFn: func(_ context.Context, id string) ([]models.Risk, services.ResolveTrace) {
			return []models.Risk{{Title: "Budget cut", OpportunityID: id}}, services.ResolveTrace{
				OpportunityID: id,
				Attempts: []services.StrategyAttempt{
					{Strategy: services.StrategyNavigation, Error: "unsupported"},
					{Strategy: services.StrategyFilter, Count: 1},
				},
				Winner: services.StrategyFilter,
			}
		},
	}

	t.Run("returns risks without trace by default", func(t *testing.T) {
		r := setupOpportunityRouter(NewOpportunityHandler(&mockOpportunityService{}, resolver, &mockAuditService{}))

		rec := doRequest(r, "GET", "/opportunities/OPP1/risks", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		risks := result["risks"].([]interface{})
		if len(risks) != 1 {
			t.Fatalf("expected 1 risk, got %d", len(risks))
		}
		if _, ok := result["trace"]; ok {
			t.Error("expected no trace without trace=true")
		}
	})

	t.Run("includes trace on request", func(t *testing.T) {
		r := setupOpportunityRouter(NewOpportunityHandler(&mockOpportunityService{}, resolver, &mockAuditService{}))

		rec := doRequest(r, "GET", "/opportunities/OPP1/risks?trace=true", "")

		trace, ok := parseJSON(t, rec)["trace"].(map[string]interface{})
		if !ok {
			t.Fatal("expected trace object")
		}
		if trace["winner"] != services.StrategyFilter {
			t.Errorf("expected winner filter, got %v", trace["winner"])
		}
		if attempts := trace["attempts"].([]interface{}); len(attempts) != 2 {
			t.Errorf("expected 2 attempts, got %d", len(attempts))
		}
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		r := setupOpportunityRouter(NewOpportunityHandler(&mockOpportunityService{}, &mockRiskResolver{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/opportunities/OPP9/risks", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		risks, ok := parseJSON(t, rec)["risks"].([]interface{})
		if !ok || len(risks) != 0 {
			t.Errorf("expected empty array, got %v", parseJSON(t, rec)["risks"])
		}
	})
}

func TestOpportunityHandler_RefreshOpportunities(t *testing.T) {
	t.Run("returns count and audits", func(t *testing.T) {
		audit := &mockAuditService{}
		svc := &mockOpportunityService{
			refreshOpportunitiesFn: func(_ context.Context) (int, error) { return 3, nil },
		}
		r := setupOpportunityRouter(NewOpportunityHandler(svc, &mockRiskResolver{}, audit))

		rec := doRequest(r, "POST", "/opportunities/refresh", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if count := parseJSON(t, rec)["count"].(float64); count != 3 {
			t.Errorf("expected count 3, got %v", count)
		}
		if got := audit.actions(); len(got) != 1 || got[0] != "REFRESH_OPPORTUNITIES" {
			t.Errorf("expected REFRESH_OPPORTUNITIES audit, got %v", got)
		}
	})

	t.Run("does not audit failures", func(t *testing.T) {
		audit := &mockAuditService{}
		svc := &mockOpportunityService{
			refreshOpportunitiesFn: func(_ context.Context) (int, error) {
				return 0, apperrors.ErrUpstreamEmpty
			},
		}
		r := setupOpportunityRouter(NewOpportunityHandler(svc, &mockRiskResolver{}, audit))

		rec := doRequest(r, "POST", "/opportunities/refresh", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		if len(audit.actions()) != 0 {
			t.Errorf("expected no audit entries, got %v", audit.actions())
		}
	})
}
