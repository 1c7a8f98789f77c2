package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceItem is a standalone adjustment the provider attaches to a customer,
// most often the credit/charge pair issued when a plan changes mid-cycle.
// Negative amounts are credits for unused time, positive amounts are charges
// for the remainder on the new plan.
type InvoiceItem struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      uuid.UUID  `gorm:"column:customer_id;type:uuid;not null;index"`
	InvoiceID       *uuid.UUID `gorm:"column:invoice_id;type:uuid;index"`
	SubscriptionID  *uuid.UUID `gorm:"column:subscription_id;type:uuid;index"`
	StripeID        string     `gorm:"column:stripe_id;not null;unique"`
	PriceID         *uuid.UUID `gorm:"column:price_id;type:uuid"`
	Amount          int64      `gorm:"column:amount;not null;default:0"`
	Currency        string     `gorm:"column:currency;not null;default:'usd'"`
	Description     *string    `gorm:"column:description"`
	Proration       bool       `gorm:"column:proration;not null;default:false"`
	PeriodStart     *time.Time `gorm:"column:period_start"`
	PeriodEnd       *time.Time `gorm:"column:period_end"`
	CreatedAtStripe time.Time  `gorm:"column:created_at_stripe;not null;index"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`

	Price *Price `gorm:"foreignKey:PriceID"`
}
