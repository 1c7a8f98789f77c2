package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer mirrors the payment provider's customer object. Rows are created
// by the webhook ingestion path; the dashboard only reads them.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StripeID  string    `gorm:"column:stripe_id;not null;unique"`
	Email     string    `gorm:"column:email;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
