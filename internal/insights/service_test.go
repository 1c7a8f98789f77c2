package insights

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/subvista/subvista-backend/internal/billing"
	"github.com/subvista/subvista-backend/pkg/db/models"
	"github.com/subvista/subvista-backend/pkg/enums"
	pkgerrors "github.com/subvista/subvista-backend/pkg/errors"
	"github.com/subvista/subvista-backend/pkg/logger"
	"github.com/subvista/subvista-backend/pkg/pagination"
)

type stubRepo struct {
	customer *models.Customer
	snapshot *billing.Snapshot
}

func (s *stubRepo) FindCustomerByStripeID(ctx context.Context, stripeID string) (*models.Customer, error) {
	if s.customer != nil && s.customer.StripeID == stripeID {
		return s.customer, nil
	}
	return nil, nil
}

func (s *stubRepo) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	if s.customer != nil && s.customer.Email == email {
		return s.customer, nil
	}
	return nil, nil
}

func (s *stubRepo) LoadSnapshot(ctx context.Context, customerID uuid.UUID) (*billing.Snapshot, error) {
	if s.snapshot != nil {
		return s.snapshot, nil
	}
	return &billing.Snapshot{}, nil
}

func (s *stubRepo) ListCharges(ctx context.Context, params billing.ListChargesQuery) ([]models.Charge, *pagination.Cursor, error) {
	return nil, nil, nil
}

func newTestService(t *testing.T, repo billing.Repository, now time.Time) *Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Now:    func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestGetAnalyticsRejectsMalformedRef(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, time.Now())

	_, err := svc.GetAnalytics(context.Background(), "bogus")
	if err == nil {
		t.Fatal("expected error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetAnalyticsUnknownCustomerIsEmptyState(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, time.Now())

	analytics, err := svc.GetAnalytics(context.Background(), "cus_missing99")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analytics.HasBillingAccount {
		t.Fatal("expected no billing account")
	}
	if analytics.UsageMetrics.TotalLifetimeValue != "$0.00" {
		t.Fatalf("expected $0.00, got %q", analytics.UsageMetrics.TotalLifetimeValue)
	}
	if len(analytics.MonthlySpend) != 0 || len(analytics.Recommendations) != 0 {
		t.Fatalf("expected empty analytics, got %+v", analytics)
	}
}

func TestGetAnalyticsEndToEnd(t *testing.T) {
	customer := analyticsCustomer()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	started := now.AddDate(0, 0, -120)

	basic := int64(1000)
	pro := int64(3000)
	interval := enums.BillingIntervalMonth
	basicProduct := &models.Product{ID: uuid.New(), StripeID: "prod_basic", Name: "Basic"}
	proProduct := &models.Product{ID: uuid.New(), StripeID: "prod_pro", Name: "Pro"}
	basicPrice := &models.Price{ID: uuid.New(), StripeID: "price_basic", UnitAmount: &basic,
		Currency: "usd", RecurringInterval: &interval, IntervalCount: 1, Product: basicProduct}
	proPrice := &models.Price{ID: uuid.New(), StripeID: "price_pro", UnitAmount: &pro,
		Currency: "usd", RecurringInterval: &interval, IntervalCount: 1, Product: proProduct}

	sub := activeSubscription(customer.ID, started)
	sub.Items = []models.SubscriptionItem{
		{ID: uuid.New(), SubscriptionID: sub.ID, StripeID: "si_1", PriceID: &basicPrice.ID,
			Quantity: 1, CreatedAtStripe: started, Price: basicPrice},
		{ID: uuid.New(), SubscriptionID: sub.ID, StripeID: "si_2", PriceID: &proPrice.ID,
			Quantity: 1, CreatedAtStripe: started.AddDate(0, 2, 0), Price: proPrice},
	}

	repo := &stubRepo{
		customer: customer,
		snapshot: &billing.Snapshot{
			Subscriptions: []models.Subscription{sub},
			Invoices: []models.Invoice{
				invoiceAt(customer.ID, started, 1000, enums.InvoiceStatusPaid),
				invoiceAt(customer.ID, started.AddDate(0, 1, 0), 1000, enums.InvoiceStatusPaid),
				invoiceAt(customer.ID, started.AddDate(0, 2, 0), 3000, enums.InvoiceStatusPaid),
			},
		},
	}
	svc := newTestService(t, repo, now)

	analytics, err := svc.GetAnalytics(context.Background(), customer.StripeID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !analytics.HasBillingAccount {
		t.Fatal("expected billing account")
	}
	if analytics.UsageMetrics.TotalSubscriptionDays != 120 {
		t.Fatalf("expected 120 days, got %d", analytics.UsageMetrics.TotalSubscriptionDays)
	}
	if analytics.UsageMetrics.PlanChangesCount != 2 {
		t.Fatalf("expected 2 plan changes, got %d", analytics.UsageMetrics.PlanChangesCount)
	}

	timeline := analytics.PlanChangesTimeline
	if len(timeline) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(timeline))
	}
	if timeline[0].Reason != enums.ChangeReasonUpgrade {
		t.Fatalf("expected first transition upgrade (absent from compares as 0), got %s", timeline[0].Reason)
	}
	if timeline[1].Reason != enums.ChangeReasonUpgrade {
		t.Fatalf("expected Basic to Pro upgrade, got %s", timeline[1].Reason)
	}
	if timeline[1].FromPlan == nil || timeline[1].FromPlan.ProductName != "Basic" {
		t.Fatalf("unexpected from plan: %+v", timeline[1].FromPlan)
	}

	if len(analytics.MonthlySpend) != 3 {
		t.Fatalf("expected 3 months of spend, got %d", len(analytics.MonthlySpend))
	}
}

func TestGetAnalyticsAppliesCustomRules(t *testing.T) {
	customer := analyticsCustomer()
	repo := &stubRepo{customer: customer, snapshot: &billing.Snapshot{}}

	fired := Recommendation{Type: enums.RecommendationTypeCost, Icon: "x", Message: "always"}
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Rules: []Rule{
			func(metrics UsageMetrics) *Recommendation { return &fired },
			func(metrics UsageMetrics) *Recommendation { return nil },
		},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	analytics, err := svc.GetAnalytics(context.Background(), customer.StripeID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(analytics.Recommendations) != 1 || analytics.Recommendations[0].Message != "always" {
		t.Fatalf("unexpected recommendations: %+v", analytics.Recommendations)
	}
}
