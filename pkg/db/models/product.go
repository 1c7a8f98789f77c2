package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the human-facing plan label ("Basic", "Pro", "Premium").
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StripeID    string    `gorm:"column:stripe_id;not null;unique"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	Active      bool      `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
