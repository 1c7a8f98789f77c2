package insights

import (
	"fmt"

	"github.com/subvista/subvista-backend/pkg/enums"
)

const (
	planStabilityThreshold = 3
	// costReviewThresholdCents triggers the cost-review suggestion above $100/mo.
	costReviewThresholdCents = 10000
)

// Rule inspects the usage metrics and optionally emits a recommendation.
// Rules are evaluated independently; any of them may decline by returning
// nil.
type Rule func(metrics UsageMetrics) *Recommendation

// DefaultRules is the shipped recommendation rule set.
func DefaultRules() []Rule {
	return []Rule{
		planStabilityRule,
		costReviewRule,
	}
}

func planStabilityRule(metrics UsageMetrics) *Recommendation {
	if metrics.PlanChangesCount <= planStabilityThreshold {
		return nil
	}
	return &Recommendation{
		Type: enums.RecommendationTypeStability,
		Icon: "📊",
		Message: fmt.Sprintf(
			"You've changed plans %d times. Settling on one plan could simplify your billing.",
			metrics.PlanChangesCount),
	}
}

func costReviewRule(metrics UsageMetrics) *Recommendation {
	if metrics.AverageMonthlyCostCents <= costReviewThresholdCents {
		return nil
	}
	return &Recommendation{
		Type: enums.RecommendationTypeCost,
		Icon: "💰",
		Message: fmt.Sprintf(
			"Your average monthly cost is %s. A lower tier might cover your usage.",
			metrics.AverageMonthlyCost),
	}
}
