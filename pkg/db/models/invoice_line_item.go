package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceLineItem is a single billed line on an invoice. Lines flagged as
// prorations are the primitive proration history is derived from; lines of
// type "subscription" contribute plan observations to the change timeline.
type InvoiceLineItem struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceID          uuid.UUID  `gorm:"column:invoice_id;type:uuid;not null;index"`
	StripeID           string     `gorm:"column:stripe_id;not null;unique"`
	SubscriptionID     *uuid.UUID `gorm:"column:subscription_id;type:uuid;index"`
	SubscriptionItemID *uuid.UUID `gorm:"column:subscription_item_id;type:uuid"`
	PriceID            *uuid.UUID `gorm:"column:price_id;type:uuid"`
	Amount             int64      `gorm:"column:amount;not null;default:0"`
	Currency           string     `gorm:"column:currency;not null;default:'usd'"`
	Description        *string    `gorm:"column:description"`
	Proration          bool       `gorm:"column:proration;not null;default:false"`
	Type               string     `gorm:"column:type;not null;default:'subscription'"`
	Quantity           int64      `gorm:"column:quantity;not null;default:1"`
	PeriodStart        *time.Time `gorm:"column:period_start"`
	PeriodEnd          *time.Time `gorm:"column:period_end"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`

	Price *Price `gorm:"foreignKey:PriceID"`
}
