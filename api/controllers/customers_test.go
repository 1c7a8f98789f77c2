package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	billingsvc "github.com/subvista/subvista-backend/internal/billing"
	"github.com/subvista/subvista-backend/internal/insights"
	"github.com/subvista/subvista-backend/internal/planhistory"
	pkgerrors "github.com/subvista/subvista-backend/pkg/errors"
)

type testPlanHistoryService struct {
	lastRef string
	result  *planhistory.PlanHistory
	err     error
}

func (s *testPlanHistoryService) GetPlanHistory(ctx context.Context, customerRef string) (*planhistory.PlanHistory, error) {
	s.lastRef = customerRef
	return s.result, s.err
}

type testAnalyticsService struct {
	lastRef string
	result  *insights.Analytics
	err     error
}

func (s *testAnalyticsService) GetAnalytics(ctx context.Context, customerRef string) (*insights.Analytics, error) {
	s.lastRef = customerRef
	return s.result, s.err
}

type testChargesService struct {
	lastParams billingsvc.ListChargesParams
	result     *billingsvc.ChargeList
	err        error
}

func (s *testChargesService) ListCharges(ctx context.Context, params billingsvc.ListChargesParams) (*billingsvc.ChargeList, error) {
	s.lastParams = params
	return s.result, s.err
}

func requestWithCustomerID(target, customerID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("customerID", customerID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCustomerPlanHistoryRequiresCustomerRef(t *testing.T) {
	handler := CustomerPlanHistory(&testPlanHistoryService{}, nil)
	resp := httptest.NewRecorder()
	handler(resp, requestWithCustomerID("/api/v1/customers//plan-history", ""))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when customer ref missing, got %d", resp.Code)
	}
}

func TestCustomerPlanHistoryReturnsEnvelope(t *testing.T) {
	service := &testPlanHistoryService{
		result: &planhistory.PlanHistory{HasBillingAccount: true},
	}
	handler := CustomerPlanHistory(service, nil)
	resp := httptest.NewRecorder()
	handler(resp, requestWithCustomerID("/api/v1/customers/cus_abc123/plan-history", "cus_abc123"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if service.lastRef != "cus_abc123" {
		t.Fatalf("expected customer ref to pass through, got %q", service.lastRef)
	}

	var body struct {
		Data struct {
			HasBillingAccount bool `json:"has_billing_account"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.Data.HasBillingAccount {
		t.Fatal("expected has_billing_account true in payload")
	}
}

func TestCustomerPlanHistoryMapsServiceErrors(t *testing.T) {
	service := &testPlanHistoryService{
		err: pkgerrors.New(pkgerrors.CodeValidation, "customer reference is invalid"),
	}
	handler := CustomerPlanHistory(service, nil)
	resp := httptest.NewRecorder()
	handler(resp, requestWithCustomerID("/api/v1/customers/bogus/plan-history", "bogus"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for validation error, got %d", resp.Code)
	}
}

func TestCustomerAnalyticsPassesRefThrough(t *testing.T) {
	service := &testAnalyticsService{
		result: &insights.Analytics{HasBillingAccount: true},
	}
	handler := CustomerAnalytics(service, nil)
	resp := httptest.NewRecorder()
	handler(resp, requestWithCustomerID("/api/v1/customers/jane@example.com/analytics", "jane@example.com"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if service.lastRef != "jane@example.com" {
		t.Fatalf("expected email ref to pass through, got %q", service.lastRef)
	}
}

func TestCustomerChargesParsesFilters(t *testing.T) {
	service := &testChargesService{
		result: &billingsvc.ChargeList{Charges: []billingsvc.ChargeView{}, NextCursor: "next-page"},
	}
	handler := CustomerCharges(service, nil)
	resp := httptest.NewRecorder()
	handler(resp, requestWithCustomerID("/api/v1/customers/cus_abc123/charges?limit=5&status=succeeded&cursor=test-cursor", "cus_abc123"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if service.lastParams.CustomerRef != "cus_abc123" {
		t.Fatalf("unexpected customer ref %q", service.lastParams.CustomerRef)
	}
	if service.lastParams.Limit != 5 {
		t.Fatalf("unexpected limit %d", service.lastParams.Limit)
	}
	if service.lastParams.Cursor != "test-cursor" {
		t.Fatalf("unexpected cursor %q", service.lastParams.Cursor)
	}
	if service.lastParams.Status == nil || service.lastParams.Status.String() != "succeeded" {
		t.Fatalf("expected succeeded status filter, got %v", service.lastParams.Status)
	}
}

func TestCustomerChargesRejectsUnknownStatus(t *testing.T) {
	handler := CustomerCharges(&testChargesService{}, nil)
	resp := httptest.NewRecorder()
	handler(resp, requestWithCustomerID("/api/v1/customers/cus_abc123/charges?status=exploded", "cus_abc123"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.Code)
	}
}

func TestCustomerChargesRejectsBadLimit(t *testing.T) {
	handler := CustomerCharges(&testChargesService{}, nil)
	resp := httptest.NewRecorder()
	handler(resp, requestWithCustomerID("/api/v1/customers/cus_abc123/charges?limit=9999", "cus_abc123"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out of range limit, got %d", resp.Code)
	}
}
