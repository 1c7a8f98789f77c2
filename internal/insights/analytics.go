package insights

import (
	"time"

	"github.com/subvista/subvista-backend/internal/billing"
	"github.com/subvista/subvista-backend/internal/planhistory"
	"github.com/subvista/subvista-backend/pkg/enums"
	"github.com/subvista/subvista-backend/pkg/money"
)

const daysPerMonth = 30

// derive computes the analytics view from a loaded snapshot and the plan
// history already built from it. Pure, like the history scan it feeds on.
func derive(snapshot *billing.Snapshot, history *planhistory.PlanHistory, now time.Time) *Analytics {
	analytics := &Analytics{
		HasBillingAccount:   true,
		MonthlySpend:        []MonthlySpendEntry{},
		PlanChangesTimeline: []AnnotatedChange{},
		Recommendations:     []Recommendation{},
	}

	currency := "usd"
	var totalPaid int64
	for i, invoice := range snapshot.Invoices {
		if i == 0 {
			currency = invoice.Currency
		}
		if invoice.Status == enums.InvoiceStatusPaid {
			totalPaid += invoice.AmountPaid
		}
	}

	days := subscriptionDays(snapshot, now)
	months := int64(days / daysPerMonth)
	if months < 1 {
		months = 1
	}
	average := totalPaid / months

	analytics.UsageMetrics = UsageMetrics{
		TotalSubscriptionDays:   days,
		AverageMonthlyCost:      money.Format(average, currency),
		AverageMonthlyCostCents: average,
		TotalLifetimeValue:      money.Format(totalPaid, currency),
		TotalLifetimeValueCents: totalPaid,
		PlanChangesCount:        history.Summary.TotalPlanChanges,
	}

	analytics.MonthlySpend = monthlySpend(snapshot, currency)

	for _, change := range history.Summary.PlanChanges {
		analytics.PlanChangesTimeline = append(analytics.PlanChangesTimeline, AnnotatedChange{
			FromPlan:  change.FromPlan,
			ToPlan:    change.ToPlan,
			Reason:    classifyChange(change.FromPlan, change.ToPlan),
			Timestamp: change.Timestamp,
		})
	}

	return analytics
}

// subscriptionDays counts whole days from the earliest subscription start to
// now. No subscriptions means zero days.
func subscriptionDays(snapshot *billing.Snapshot, now time.Time) int {
	var earliest time.Time
	for _, sub := range snapshot.Subscriptions {
		started := sub.CreatedAtStripe
		if sub.StartedAt != nil {
			started = *sub.StartedAt
		}
		if earliest.IsZero() || started.Before(earliest) {
			earliest = started
		}
	}
	if earliest.IsZero() {
		return 0
	}
	days := int(now.Sub(earliest).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// monthlySpend sums invoice amount_paid per calendar month. Only months with
// invoices appear; a month whose invoices paid nothing keeps a zero entry.
func monthlySpend(snapshot *billing.Snapshot, currency string) []MonthlySpendEntry {
	type bucket struct {
		label string
		total int64
	}
	var order []string
	totals := make(map[string]*bucket)

	// Snapshot invoices are ascending, so first appearance is chronological.
	for _, invoice := range snapshot.Invoices {
		key := invoice.CreatedAtStripe.Format("2006-01")
		entry, ok := totals[key]
		if !ok {
			entry = &bucket{label: invoice.CreatedAtStripe.Format("Jan 2006")}
			totals[key] = entry
			order = append(order, key)
		}
		entry.total += invoice.AmountPaid
	}

	series := make([]MonthlySpendEntry, 0, len(order))
	for _, key := range order {
		entry := totals[key]
		series = append(series, MonthlySpendEntry{
			Month:       entry.label,
			Amount:      money.Format(entry.total, currency),
			AmountCents: entry.total,
		})
	}
	return series
}

// classifyChange tags a transition as an upgrade only when the new plan's
// unit amount is strictly greater than the old one's; everything else,
// including equal amounts, is a downgrade. An absent plan compares as zero.
func classifyChange(from *planhistory.PlanRef, to planhistory.PlanRef) enums.ChangeReason {
	var fromAmount, toAmount int64
	if from != nil && from.UnitAmount != nil {
		fromAmount = *from.UnitAmount
	}
	if to.UnitAmount != nil {
		toAmount = *to.UnitAmount
	}
	if toAmount > fromAmount {
		return enums.ChangeReasonUpgrade
	}
	return enums.ChangeReasonDowngrade
}
