package billing

import (
	"context"
	"regexp"
	"strings"

	"github.com/subvista/subvista-backend/pkg/db/models"
	pkgerrors "github.com/subvista/subvista-backend/pkg/errors"
)

// CustomerRef identifies a customer by provider ID or email. Exactly one
// field is set after parsing.
type CustomerRef struct {
	StripeID string
	Email    string
}

var (
	stripeCustomerIDPattern = regexp.MustCompile(`^cus_[A-Za-z0-9]{6,}$`)
	emailPattern            = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ParseCustomerRef classifies a raw lookup value as a provider customer ID
// or an email address. Anything else is a validation error.
func ParseCustomerRef(raw string) (CustomerRef, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return CustomerRef{}, pkgerrors.New(pkgerrors.CodeValidation, "customer reference is required")
	}
	if strings.HasPrefix(value, "cus_") {
		if !stripeCustomerIDPattern.MatchString(value) {
			return CustomerRef{}, pkgerrors.New(pkgerrors.CodeValidation, "malformed customer id")
		}
		return CustomerRef{StripeID: value}, nil
	}
	if strings.Contains(value, "@") {
		if !emailPattern.MatchString(value) {
			return CustomerRef{}, pkgerrors.New(pkgerrors.CodeValidation, "malformed email address")
		}
		return CustomerRef{Email: strings.ToLower(value)}, nil
	}
	return CustomerRef{}, pkgerrors.New(pkgerrors.CodeValidation, "customer reference must be a customer id or email")
}

// ResolveCustomer looks up the referenced customer. A missing customer
// returns (nil, nil); callers decide whether that is an empty state or an
// error.
func ResolveCustomer(ctx context.Context, repo Repository, ref CustomerRef) (*models.Customer, error) {
	if ref.StripeID != "" {
		return repo.FindCustomerByStripeID(ctx, ref.StripeID)
	}
	if ref.Email != "" {
		return repo.FindCustomerByEmail(ctx, ref.Email)
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer reference is required")
}
