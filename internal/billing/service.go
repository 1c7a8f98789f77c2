package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/subvista/subvista-backend/pkg/db/models"
	"github.com/subvista/subvista-backend/pkg/enums"
	pkgerrors "github.com/subvista/subvista-backend/pkg/errors"
	"github.com/subvista/subvista-backend/pkg/money"
	"github.com/subvista/subvista-backend/pkg/pagination"
)

// ServiceParams groups dependencies for the billing service.
type ServiceParams struct {
	Repo Repository
}

// Service exposes read operations over the mirrored billing data.
type Service struct {
	repo Repository
}

// NewService builds a billing service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// ListChargesParams configures a paged charge listing for one customer.
type ListChargesParams struct {
	CustomerRef string
	Limit       int
	Cursor      string
	Status      *enums.ChargeStatus
}

// ChargeView is one charge prepared for display.
type ChargeView struct {
	ID          uuid.UUID  `json:"id"`
	StripeID    string     `json:"stripe_id"`
	Amount      string     `json:"amount"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	Description *string    `json:"description,omitempty"`
	InvoiceID   *uuid.UUID `json:"invoice_id,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// ChargeList is a page of charges plus the cursor for the next page.
type ChargeList struct {
	Charges    []ChargeView `json:"charges"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// ListCharges resolves the customer reference and returns one page of their
// charges, newest first.
func (s *Service) ListCharges(ctx context.Context, params ListChargesParams) (*ChargeList, error) {
	ref, err := ParseCustomerRef(params.CustomerRef)
	if err != nil {
		return nil, err
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	customer, err := ResolveCustomer(ctx, s.repo, ref)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return &ChargeList{Charges: []ChargeView{}}, nil
	}

	charges, next, err := s.repo.ListCharges(ctx, ListChargesQuery{
		CustomerID: customer.ID,
		Limit:      params.Limit,
		Cursor:     cursor,
		Status:     params.Status,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list charges")
	}

	list := &ChargeList{Charges: make([]ChargeView, 0, len(charges))}
	for _, charge := range charges {
		list.Charges = append(list.Charges, viewForCharge(charge))
	}
	if next != nil {
		list.NextCursor = pagination.EncodeCursor(*next)
	}
	return list, nil
}

func viewForCharge(charge models.Charge) ChargeView {
	return ChargeView{
		ID:          charge.ID,
		StripeID:    charge.StripeID,
		Amount:      money.Format(charge.AmountCents, charge.Currency),
		AmountCents: charge.AmountCents,
		Currency:    charge.Currency,
		Status:      charge.Status.String(),
		Description: charge.Description,
		InvoiceID:   charge.InvoiceID,
		OccurredAt:  charge.CreatedAtStripe,
	}
}
