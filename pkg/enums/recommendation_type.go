package enums

import "fmt"

// RecommendationType identifies which analytics rule produced a recommendation.
type RecommendationType string

const (
	RecommendationTypeStability RecommendationType = "stability"
	RecommendationTypeCost      RecommendationType = "cost"
)

var validRecommendationTypes = []RecommendationType{
	RecommendationTypeStability,
	RecommendationTypeCost,
}

// String implements fmt.Stringer.
func (r RecommendationType) String() string {
	return string(r)
}

// IsValid reports whether the value is known.
func (r RecommendationType) IsValid() bool {
	for _, candidate := range validRecommendationTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRecommendationType converts raw input into a RecommendationType.
func ParseRecommendationType(value string) (RecommendationType, error) {
	for _, candidate := range validRecommendationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid recommendation type %q", value)
}
