package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/subvista/subvista-backend/pkg/enums"
)

// Charge records provider charges per customer.
type Charge struct {
	ID              uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      uuid.UUID          `gorm:"column:customer_id;type:uuid;not null;index"`
	InvoiceID       *uuid.UUID         `gorm:"column:invoice_id;type:uuid;index"`
	StripeID        string             `gorm:"column:stripe_id;not null;unique"`
	AmountCents     int64              `gorm:"column:amount_cents;not null"`
	Currency        string             `gorm:"column:currency;not null;default:'usd'"`
	Status          enums.ChargeStatus `gorm:"column:status;type:charge_status;not null;default:'pending'"`
	Description     *string            `gorm:"column:description"`
	CreatedAtStripe time.Time          `gorm:"column:created_at_stripe;not null;index"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
