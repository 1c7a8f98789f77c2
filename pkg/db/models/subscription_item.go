package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionItem links a subscription to the price it currently bills under.
type SubscriptionItem struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SubscriptionID  uuid.UUID  `gorm:"column:subscription_id;type:uuid;not null;index"`
	StripeID        string     `gorm:"column:stripe_id;not null;unique"`
	PriceID         *uuid.UUID `gorm:"column:price_id;type:uuid"`
	Quantity        int64      `gorm:"column:quantity;not null;default:1"`
	CreatedAtStripe time.Time  `gorm:"column:created_at_stripe;not null;index"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Price *Price `gorm:"foreignKey:PriceID"`
}
