package insights

import (
	"context"
	"errors"
	"time"

	"github.com/subvista/subvista-backend/internal/billing"
	"github.com/subvista/subvista-backend/internal/planhistory"
	pkgerrors "github.com/subvista/subvista-backend/pkg/errors"
	"github.com/subvista/subvista-backend/pkg/logger"
	"github.com/subvista/subvista-backend/pkg/metrics"
)

const reportName = "analytics"

// ServiceParams groups dependencies for the analytics deriver.
type ServiceParams struct {
	Repo    billing.Repository
	Logger  *logger.Logger
	Metrics *metrics.ReportMetrics
	Rules   []Rule
	Now     func() time.Time
}

// Service derives usage metrics, spend trends, and recommendations from a
// customer's billing history.
type Service struct {
	repo    billing.Repository
	logg    *logger.Logger
	metrics *metrics.ReportMetrics
	rules   []Rule
	now     func() time.Time
}

// NewService builds an analytics service. Rules and the clock default to
// DefaultRules and time.Now.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	rules := params.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:    params.Repo,
		logg:    params.Logger,
		metrics: params.Metrics,
		rules:   rules,
		now:     now,
	}, nil
}

// GetAnalytics resolves the customer reference and derives the analytics
// view from their billing snapshot. An unknown customer is an empty state.
func (s *Service) GetAnalytics(ctx context.Context, customerRef string) (*Analytics, error) {
	started := time.Now()

	analytics, err := s.getAnalytics(ctx, customerRef)
	s.metrics.ObserveDuration(reportName, time.Since(started))
	if err != nil {
		s.metrics.IncFailure(reportName)
		return nil, err
	}
	s.metrics.IncSuccess(reportName)
	return analytics, nil
}

func (s *Service) getAnalytics(ctx context.Context, customerRef string) (*Analytics, error) {
	ref, err := billing.ParseCustomerRef(customerRef)
	if err != nil {
		return nil, err
	}

	customer, err := billing.ResolveCustomer(ctx, s.repo, ref)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve customer")
	}
	if customer == nil {
		return emptyAnalytics(), nil
	}

	snapshot, err := s.repo.LoadSnapshot(ctx, customer.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load billing snapshot")
	}

	history := planhistory.Build(customer, snapshot)
	analytics := derive(snapshot, history, s.now().UTC())
	for _, rule := range s.rules {
		if recommendation := rule(analytics.UsageMetrics); recommendation != nil {
			analytics.Recommendations = append(analytics.Recommendations, *recommendation)
		}
	}

	ctx = s.logg.WithCustomerID(ctx, customer.StripeID)
	s.logg.Info(ctx, "analytics derived")
	return analytics, nil
}

// emptyAnalytics is the valid zero state for a reference with no billing
// account behind it.
func emptyAnalytics() *Analytics {
	return &Analytics{
		HasBillingAccount: false,
		UsageMetrics: UsageMetrics{
			AverageMonthlyCost: "$0.00",
			TotalLifetimeValue: "$0.00",
		},
		MonthlySpend:        []MonthlySpendEntry{},
		PlanChangesTimeline: []AnnotatedChange{},
		Recommendations:     []Recommendation{},
	}
}
