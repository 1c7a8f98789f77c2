package enums

import "fmt"

// ChangeReason classifies a plan transition by price direction. A transition
// counts as an upgrade only when the new unit amount is strictly greater than
// the previous one; equal amounts classify as a downgrade.
type ChangeReason string

const (
	ChangeReasonUpgrade   ChangeReason = "upgrade"
	ChangeReasonDowngrade ChangeReason = "downgrade"
)

var validChangeReasons = []ChangeReason{
	ChangeReasonUpgrade,
	ChangeReasonDowngrade,
}

// String implements fmt.Stringer.
func (c ChangeReason) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c ChangeReason) IsValid() bool {
	for _, candidate := range validChangeReasons {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseChangeReason converts raw input into a ChangeReason.
func ParseChangeReason(value string) (ChangeReason, error) {
	for _, candidate := range validChangeReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid change reason %q", value)
}
