package enums

import "fmt"

// PlanEventType tags entries on the plan-change timeline. The first plan
// observed on a subscription is always a creation, never an update.
type PlanEventType string

const (
	PlanEventTypeCreated PlanEventType = "plan_created"
	PlanEventTypeUpdated PlanEventType = "plan_updated"
)

var validPlanEventTypes = []PlanEventType{
	PlanEventTypeCreated,
	PlanEventTypeUpdated,
}

// String implements fmt.Stringer.
func (p PlanEventType) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p PlanEventType) IsValid() bool {
	for _, candidate := range validPlanEventTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlanEventType converts raw input into a PlanEventType.
func ParsePlanEventType(value string) (PlanEventType, error) {
	for _, candidate := range validPlanEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plan event type %q", value)
}
