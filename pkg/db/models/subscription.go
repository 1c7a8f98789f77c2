package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/subvista/subvista-backend/pkg/enums"
)

// Subscription persists provider subscription state per customer. A customer
// usually has one live subscription but the schema allows several; readers
// must tolerate multiples in any status.
type Subscription struct {
	ID                 uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID         uuid.UUID                `gorm:"column:customer_id;type:uuid;not null;index"`
	StripeID           string                   `gorm:"column:stripe_id;not null;unique"`
	Status             enums.SubscriptionStatus `gorm:"column:status;type:subscription_status;not null;default:'active'"`
	CurrentPeriodStart *time.Time               `gorm:"column:current_period_start"`
	CurrentPeriodEnd   *time.Time               `gorm:"column:current_period_end"`
	CancelAtPeriodEnd  bool                     `gorm:"column:cancel_at_period_end;not null;default:false"`
	CanceledAt         *time.Time               `gorm:"column:canceled_at"`
	StartedAt          *time.Time               `gorm:"column:started_at"`
	EndedAt            *time.Time               `gorm:"column:ended_at"`
	CreatedAtStripe    time.Time                `gorm:"column:created_at_stripe;not null;index"`
	Metadata           json.RawMessage          `gorm:"column:metadata;type:jsonb"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	Items []SubscriptionItem `gorm:"foreignKey:SubscriptionID"`
}
