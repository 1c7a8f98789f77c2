package planhistory

import (
	"time"

	"github.com/google/uuid"

	"github.com/subvista/subvista-backend/pkg/enums"
)

// PlanHistory is the aggregated subscription history view for one customer.
type PlanHistory struct {
	HasBillingAccount bool          `json:"has_billing_account"`
	Customer          *CustomerInfo `json:"customer,omitempty"`
	Invoices          []InvoiceView `json:"invoices"`
	Summary           Summary       `json:"summary"`
}

// CustomerInfo is the customer header for the history view.
type CustomerInfo struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	StripeID      string    `json:"stripe_id"`
	CustomerSince time.Time `json:"customer_since"`
}

// InvoiceView is one invoice prepared for display, most recent first in the
// parent slice.
type InvoiceView struct {
	ID          uuid.UUID  `json:"id"`
	StripeID    string     `json:"stripe_id"`
	Status      string     `json:"status"`
	AmountDue   string     `json:"amount_due"`
	AmountPaid  string     `json:"amount_paid"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
	InvoicePDF  *string    `json:"invoice_pdf,omitempty"`
}

// Summary carries the inferred timeline and the precomputed counters.
type Summary struct {
	CurrentPlans        []PlanView      `json:"current_plans"`
	PlanChangeTimeline  []TimelineEvent `json:"plan_change_timeline"`
	PlanChanges         []PlanChange    `json:"plan_changes"`
	ProrationHistory    []ProrationView `json:"proration_history"`
	Prorations          []Proration     `json:"prorations"`
	TotalAmountPaid     string          `json:"total_amount_paid"`
	TotalPlanChanges    int             `json:"total_plan_changes"`
	TotalInvoices       int             `json:"total_invoices"`
	TotalSubscriptions  int             `json:"total_subscriptions"`
	ActiveSubscriptions int             `json:"active_subscriptions"`
}

// PlanView is a currently active plan.
type PlanView struct {
	ProductName     string     `json:"product_name"`
	Price           string     `json:"price"`
	Frequency       string     `json:"frequency"`
	Status          string     `json:"status"`
	NextBillingDate *time.Time `json:"next_billing_date,omitempty"`
}

// TimelineEvent is one entry in the chronological plan-change timeline.
type TimelineEvent struct {
	Event     enums.PlanEventType `json:"event"`
	PlanName  string              `json:"plan_name"`
	Price     string              `json:"price"`
	Frequency string              `json:"frequency"`
	Timestamp time.Time           `json:"timestamp"`
}

// PlanRef names one side of a plan transition. UnitAmount carries the raw
// minor-unit price so downstream consumers can compare plans numerically.
type PlanRef struct {
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	UnitAmount  *int64 `json:"unit_amount,omitempty"`
}

// PlanChange pairs the plans on either side of a transition. FromPlan is
// absent when the transition created the subscription's first plan.
type PlanChange struct {
	FromPlan  *PlanRef  `json:"from_plan,omitempty"`
	ToPlan    PlanRef   `json:"to_plan"`
	Timestamp time.Time `json:"timestamp"`
}

// ProrationView is one proration adjustment with a signed formatted amount.
type ProrationView struct {
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// Proration is the raw record backing a ProrationView.
type Proration struct {
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Timestamp   time.Time `json:"timestamp"`
}
