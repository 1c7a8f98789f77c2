package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/subvista/subvista-backend/pkg/enums"
)

// Price carries the unit amount and cadence a product bills at. Amounts are
// integer minor currency units; nothing here is ever a float.
type Price struct {
	ID                uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StripeID          string                 `gorm:"column:stripe_id;not null;unique"`
	ProductID         *uuid.UUID             `gorm:"column:product_id;type:uuid;index"`
	UnitAmount        *int64                 `gorm:"column:unit_amount"`
	Currency          string                 `gorm:"column:currency;not null;default:'usd'"`
	RecurringInterval *enums.BillingInterval `gorm:"column:recurring_interval;type:billing_interval"`
	IntervalCount     int64                  `gorm:"column:recurring_interval_count;not null;default:1"`
	LookupKey         *string                `gorm:"column:lookup_key"`
	Nickname          *string                `gorm:"column:nickname"`
	Active            bool                   `gorm:"column:active;not null;default:true"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time              `gorm:"column:updated_at;autoUpdateTime"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
