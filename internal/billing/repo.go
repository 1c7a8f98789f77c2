package billing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subvista/subvista-backend/pkg/db/models"
	"github.com/subvista/subvista-backend/pkg/enums"
	"github.com/subvista/subvista-backend/pkg/pagination"
)

// Repository reads the mirrored billing tables. The dashboard never writes
// them; ingestion happens elsewhere.
type Repository interface {
	FindCustomerByStripeID(ctx context.Context, stripeID string) (*models.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	LoadSnapshot(ctx context.Context, customerID uuid.UUID) (*Snapshot, error)
	ListCharges(ctx context.Context, params ListChargesQuery) ([]models.Charge, *pagination.Cursor, error)
}

// Snapshot is everything the aggregators need for one customer, loaded in a
// single pass. Slices are ordered by the provider-side creation timestamp
// ascending so callers can scan them chronologically.
type Snapshot struct {
	Subscriptions []models.Subscription
	Invoices      []models.Invoice
	InvoiceItems  []models.InvoiceItem
	Charges       []models.Charge
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a billing repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindCustomerByStripeID(ctx context.Context, stripeID string) (*models.Customer, error) {
	if stripeID == "" {
		return nil, nil
	}
	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("stripe_id = ?", stripeID).
		First(&customer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	if email == "" {
		return nil, nil
	}
	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC").
		First(&customer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) LoadSnapshot(ctx context.Context, customerID uuid.UUID) (*Snapshot, error) {
	snapshot := &Snapshot{}

	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at_stripe ASC, id ASC")
		}).
		Preload("Items.Price").
		Preload("Items.Price.Product").
		Where("customer_id = ?", customerID).
		Order("created_at_stripe ASC, id ASC").
		Find(&snapshot.Subscriptions).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Lines.Price").
		Preload("Lines.Price.Product").
		Where("customer_id = ?", customerID).
		Order("created_at_stripe ASC, id ASC").
		Find(&snapshot.Invoices).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Price").
		Preload("Price.Product").
		Where("customer_id = ?", customerID).
		Order("created_at_stripe ASC, id ASC").
		Find(&snapshot.InvoiceItems).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at_stripe ASC, id ASC").
		Find(&snapshot.Charges).Error; err != nil {
		return nil, err
	}

	return snapshot, nil
}

// ListChargesQuery configures the paged charge listing.
type ListChargesQuery struct {
	CustomerID uuid.UUID
	Limit      int
	Cursor     *pagination.Cursor
	Status     *enums.ChargeStatus
}

func (r *repository) ListCharges(ctx context.Context, params ListChargesQuery) ([]models.Charge, *pagination.Cursor, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).
		Model(&models.Charge{}).
		Where("customer_id = ?", params.CustomerID)
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at_stripe, id) < (?, ?)", params.Cursor.OccurredAt, params.Cursor.ID)
	}

	var charges []models.Charge
	if err := query.
		Order("created_at_stripe DESC, id DESC").
		Limit(pagination.LimitWithBuffer(limit)).
		Find(&charges).Error; err != nil {
		return nil, nil, err
	}

	if len(charges) > limit {
		charges = charges[:limit]
		// cursor points at the last row returned; the strict (ts, id) < (?, ?)
		// comparison on the next page starts right after it
		last := charges[limit-1]
		return charges, &pagination.Cursor{
			OccurredAt: last.CreatedAtStripe,
			ID:         last.ID,
		}, nil
	}

	return charges, nil, nil
}
