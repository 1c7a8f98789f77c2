package planhistory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/subvista/subvista-backend/internal/billing"
	pkgerrors "github.com/subvista/subvista-backend/pkg/errors"
	"github.com/subvista/subvista-backend/pkg/logger"
	"github.com/subvista/subvista-backend/pkg/metrics"
)

const reportName = "plan_history"

// ServiceParams groups dependencies for the history aggregator.
type ServiceParams struct {
	Repo    billing.Repository
	Logger  *logger.Logger
	Metrics *metrics.ReportMetrics
}

// Service reconstructs a customer's plan-change and proration history from
// the mirrored billing records.
type Service struct {
	repo    billing.Repository
	logg    *logger.Logger
	metrics *metrics.ReportMetrics
}

// NewService builds a history aggregator service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{
		repo:    params.Repo,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// GetPlanHistory resolves the customer reference, loads their billing
// snapshot, and derives the full history view. An unknown customer is an
// empty state, not an error.
func (s *Service) GetPlanHistory(ctx context.Context, customerRef string) (*PlanHistory, error) {
	started := time.Now()

	history, err := s.getPlanHistory(ctx, customerRef)
	s.metrics.ObserveDuration(reportName, time.Since(started))
	if err != nil {
		s.metrics.IncFailure(reportName)
		return nil, err
	}
	s.metrics.IncSuccess(reportName)
	return history, nil
}

func (s *Service) getPlanHistory(ctx context.Context, customerRef string) (*PlanHistory, error) {
	ref, err := billing.ParseCustomerRef(customerRef)
	if err != nil {
		return nil, err
	}

	customer, err := billing.ResolveCustomer(ctx, s.repo, ref)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve customer")
	}
	if customer == nil {
		return emptyHistory(), nil
	}

	snapshot, err := s.repo.LoadSnapshot(ctx, customer.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load billing snapshot")
	}

	history := Build(customer, snapshot)
	ctx = s.logg.WithCustomerID(ctx, customer.StripeID)
	s.logg.Info(ctx, fmt.Sprintf("plan history built: %d invoices, %d plan changes",
		history.Summary.TotalInvoices, history.Summary.TotalPlanChanges))
	return history, nil
}

// emptyHistory is the valid zero state for a reference with no billing
// account behind it.
func emptyHistory() *PlanHistory {
	return &PlanHistory{
		HasBillingAccount: false,
		Invoices:          []InvoiceView{},
		Summary: Summary{
			CurrentPlans:       []PlanView{},
			PlanChangeTimeline: []TimelineEvent{},
			PlanChanges:        []PlanChange{},
			ProrationHistory:   []ProrationView{},
			Prorations:         []Proration{},
			TotalAmountPaid:    "$0.00",
		},
	}
}
