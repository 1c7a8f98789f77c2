package insights

import (
	"time"

	"github.com/subvista/subvista-backend/internal/planhistory"
	"github.com/subvista/subvista-backend/pkg/enums"
)

// Analytics is the derived analytics view for one customer.
type Analytics struct {
	HasBillingAccount   bool                `json:"has_billing_account"`
	UsageMetrics        UsageMetrics        `json:"usage_metrics"`
	MonthlySpend        []MonthlySpendEntry `json:"monthly_spend"`
	PlanChangesTimeline []AnnotatedChange   `json:"plan_changes_timeline"`
	Recommendations     []Recommendation    `json:"recommendations"`
}

// UsageMetrics are the coarse usage numbers the analytics view leads with.
type UsageMetrics struct {
	TotalSubscriptionDays   int    `json:"total_subscription_days"`
	AverageMonthlyCost      string `json:"average_monthly_cost"`
	AverageMonthlyCostCents int64  `json:"average_monthly_cost_cents"`
	TotalLifetimeValue      string `json:"total_lifetime_value"`
	TotalLifetimeValueCents int64  `json:"total_lifetime_value_cents"`
	PlanChangesCount        int    `json:"plan_changes_count"`
}

// MonthlySpendEntry is one calendar month of invoice spend.
type MonthlySpendEntry struct {
	Month       string `json:"month"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
}

// AnnotatedChange is a plan transition tagged with its direction.
type AnnotatedChange struct {
	FromPlan  *planhistory.PlanRef `json:"from_plan,omitempty"`
	ToPlan    planhistory.PlanRef  `json:"to_plan"`
	Reason    enums.ChangeReason   `json:"reason"`
	Timestamp time.Time            `json:"timestamp"`
}

// Recommendation is one rule-produced suggestion.
type Recommendation struct {
	Type    enums.RecommendationType `json:"type"`
	Icon    string                   `json:"icon"`
	Message string                   `json:"message"`
}
