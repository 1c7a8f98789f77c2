package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/subvista/subvista-backend/pkg/enums"
)

// Invoice is the provider's billing document for a customer and optionally a
// subscription. All amounts are integer minor units.
type Invoice struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	SubscriptionID  *uuid.UUID          `gorm:"column:subscription_id;type:uuid;index"`
	StripeID        string              `gorm:"column:stripe_id;not null;unique"`
	Status          enums.InvoiceStatus `gorm:"column:status;type:invoice_status;not null;default:'draft'"`
	AmountDue       int64               `gorm:"column:amount_due;not null;default:0"`
	AmountPaid      int64               `gorm:"column:amount_paid;not null;default:0"`
	AmountRemaining int64               `gorm:"column:amount_remaining;not null;default:0"`
	Currency        string              `gorm:"column:currency;not null;default:'usd'"`
	PeriodStart     *time.Time          `gorm:"column:period_start"`
	PeriodEnd       *time.Time          `gorm:"column:period_end"`
	CreatedAtStripe time.Time           `gorm:"column:created_at_stripe;not null;index"`
	PaidAt          *time.Time          `gorm:"column:paid_at"`
	InvoicePDF      *string             `gorm:"column:invoice_pdf"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	Lines []InvoiceLineItem `gorm:"foreignKey:InvoiceID"`
}
