package planhistory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/subvista/subvista-backend/internal/billing"
	"github.com/subvista/subvista-backend/pkg/db/models"
	"github.com/subvista/subvista-backend/pkg/enums"
	"github.com/subvista/subvista-backend/pkg/money"
)

const (
	unknownProductName   = "Unknown"
	fallbackProrationMsg = "Plan change adjustment"

	lineTypeSubscription = "subscription"
)

// planObservation is one sighting of a (product, price) pair on a
// subscription. Subscription items and subscription-type invoice lines both
// contribute observations; the scan over them infers the change timeline.
type planObservation struct {
	subscriptionID uuid.UUID
	observedAt     time.Time
	price          *models.Price
}

// Build derives the full plan history from a loaded snapshot. The scan is
// pure: it touches nothing but the snapshot it is handed.
func Build(customer *models.Customer, snapshot *billing.Snapshot) *PlanHistory {
	history := &PlanHistory{
		HasBillingAccount: true,
		Customer: &CustomerInfo{
			Name:          customer.Name,
			Email:         customer.Email,
			StripeID:      customer.StripeID,
			CustomerSince: customer.CreatedAt,
		},
		Invoices: invoiceViews(snapshot.Invoices),
		Summary: Summary{
			CurrentPlans:       []PlanView{},
			PlanChangeTimeline: []TimelineEvent{},
			PlanChanges:        []PlanChange{},
			ProrationHistory:   []ProrationView{},
			Prorations:         []Proration{},
		},
	}

	observations := collectObservations(snapshot)
	scanTimeline(observations, &history.Summary)
	collectProrations(snapshot, &history.Summary)

	lastPrice := lastObservedPrices(observations)
	for _, sub := range snapshot.Subscriptions {
		if !sub.Status.IsCurrent() {
			continue
		}
		price := lastPrice[sub.ID]
		history.Summary.CurrentPlans = append(history.Summary.CurrentPlans, PlanView{
			ProductName:     productName(price),
			Price:           priceLabel(price),
			Frequency:       frequencyLabel(price),
			Status:          sub.Status.String(),
			NextBillingDate: sub.CurrentPeriodEnd,
		})
	}

	var totalPaid int64
	currency := "usd"
	for i, invoice := range snapshot.Invoices {
		if i == 0 {
			currency = invoice.Currency
		}
		if invoice.Status == enums.InvoiceStatusPaid {
			totalPaid += invoice.AmountPaid
		}
	}
	history.Summary.TotalAmountPaid = money.Format(totalPaid, currency)
	history.Summary.TotalPlanChanges = len(history.Summary.PlanChanges)
	history.Summary.TotalInvoices = len(snapshot.Invoices)
	history.Summary.TotalSubscriptions = len(snapshot.Subscriptions)
	for _, sub := range snapshot.Subscriptions {
		if sub.Status.IsCurrent() {
			history.Summary.ActiveSubscriptions++
		}
	}

	return history
}

// collectObservations gathers price sightings for every subscription in
// ascending observed-at order. Ties keep their source order: subscription
// items first, then invoice lines, each already chronological.
func collectObservations(snapshot *billing.Snapshot) []planObservation {
	var observations []planObservation
	for _, sub := range snapshot.Subscriptions {
		for _, item := range sub.Items {
			if item.Price == nil {
				continue
			}
			observations = append(observations, planObservation{
				subscriptionID: sub.ID,
				observedAt:     item.CreatedAtStripe,
				price:          item.Price,
			})
		}
	}
	for _, invoice := range snapshot.Invoices {
		for _, line := range invoice.Lines {
			if line.Type != lineTypeSubscription || line.Proration {
				continue
			}
			if line.Price == nil || line.SubscriptionID == nil {
				continue
			}
			observations = append(observations, planObservation{
				subscriptionID: *line.SubscriptionID,
				observedAt:     invoice.CreatedAtStripe,
				price:          line.Price,
			})
		}
	}
	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].observedAt.Before(observations[j].observedAt)
	})
	return observations
}

// scanTimeline walks the observations once, emitting plan_created for a
// subscription's first pair and plan_updated whenever the pair changes.
// Repeat sightings of the same price are no-ops.
func scanTimeline(observations []planObservation, summary *Summary) {
	seen := make(map[uuid.UUID]uuid.UUID)
	lastRef := make(map[uuid.UUID]PlanRef)

	for _, obs := range observations {
		prev, known := seen[obs.subscriptionID]
		if known && prev == obs.price.ID {
			continue
		}

		ref := PlanRef{
			ProductName: productName(obs.price),
			Price:       priceLabel(obs.price),
			UnitAmount:  obs.price.UnitAmount,
		}
		event := enums.PlanEventTypeCreated
		change := PlanChange{ToPlan: ref, Timestamp: obs.observedAt}
		if known {
			event = enums.PlanEventTypeUpdated
			from := lastRef[obs.subscriptionID]
			change.FromPlan = &from
		}

		summary.PlanChangeTimeline = append(summary.PlanChangeTimeline, TimelineEvent{
			Event:     event,
			PlanName:  ref.ProductName,
			Price:     ref.Price,
			Frequency: frequencyLabel(obs.price),
			Timestamp: obs.observedAt,
		})
		summary.PlanChanges = append(summary.PlanChanges, change)

		seen[obs.subscriptionID] = obs.price.ID
		lastRef[obs.subscriptionID] = ref
	}
}

// collectProrations surfaces proration adjustments in chronological order.
// Invoice lines flagged proration are the canonical source; standalone
// invoice items count only while not yet attached to an invoice, otherwise
// the line already covers them.
func collectProrations(snapshot *billing.Snapshot, summary *Summary) {
	type rawProration struct {
		description *string
		amount      int64
		currency    string
		timestamp   time.Time
	}

	var raws []rawProration
	for _, invoice := range snapshot.Invoices {
		for _, line := range invoice.Lines {
			if !line.Proration {
				continue
			}
			raws = append(raws, rawProration{
				description: line.Description,
				amount:      line.Amount,
				currency:    line.Currency,
				timestamp:   invoice.CreatedAtStripe,
			})
		}
	}
	for _, item := range snapshot.InvoiceItems {
		if !item.Proration || item.InvoiceID != nil {
			continue
		}
		raws = append(raws, rawProration{
			description: item.Description,
			amount:      item.Amount,
			currency:    item.Currency,
			timestamp:   item.CreatedAtStripe,
		})
	}
	sort.SliceStable(raws, func(i, j int) bool {
		return raws[i].timestamp.Before(raws[j].timestamp)
	})

	for _, raw := range raws {
		description := fallbackProrationMsg
		if raw.description != nil && *raw.description != "" {
			description = *raw.description
		}
		summary.ProrationHistory = append(summary.ProrationHistory, ProrationView{
			Description: description,
			Amount:      money.Format(raw.amount, raw.currency),
			Timestamp:   raw.timestamp,
		})
		summary.Prorations = append(summary.Prorations, Proration{
			Description: description,
			AmountCents: raw.amount,
			Currency:    raw.currency,
			Timestamp:   raw.timestamp,
		})
	}
}

// lastObservedPrices returns the most recent price seen per subscription.
func lastObservedPrices(observations []planObservation) map[uuid.UUID]*models.Price {
	last := make(map[uuid.UUID]*models.Price)
	for _, obs := range observations {
		last[obs.subscriptionID] = obs.price
	}
	return last
}

func invoiceViews(invoices []models.Invoice) []InvoiceView {
	views := make([]InvoiceView, 0, len(invoices))
	// Snapshot order is ascending; the view wants most recent first.
	for i := len(invoices) - 1; i >= 0; i-- {
		invoice := invoices[i]
		views = append(views, InvoiceView{
			ID:          invoice.ID,
			StripeID:    invoice.StripeID,
			Status:      invoice.Status.String(),
			AmountDue:   money.Format(invoice.AmountDue, invoice.Currency),
			AmountPaid:  money.Format(invoice.AmountPaid, invoice.Currency),
			AmountCents: invoice.AmountPaid,
			Currency:    invoice.Currency,
			CreatedAt:   invoice.CreatedAtStripe,
			PaidAt:      invoice.PaidAt,
			PeriodStart: invoice.PeriodStart,
			PeriodEnd:   invoice.PeriodEnd,
			InvoicePDF:  invoice.InvoicePDF,
		})
	}
	return views
}

func productName(price *models.Price) string {
	if price == nil || price.Product == nil {
		return unknownProductName
	}
	return price.Product.Name
}

func priceLabel(price *models.Price) string {
	if price == nil {
		return money.Absent
	}
	return money.FormatPtr(price.UnitAmount, price.Currency)
}

func frequencyLabel(price *models.Price) string {
	if price == nil {
		return money.FormatFrequency(nil, 0)
	}
	return money.FormatFrequency(price.RecurringInterval, price.IntervalCount)
}
