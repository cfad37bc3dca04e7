package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dealership is a selling entity that can receive and act on leads.
// All contact channels are optional; the notification dispatcher picks
// the first one available.
type Dealership struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"not null"`
	Slug string    `json:"slug" gorm:"uniqueIndex;not null"`

	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	WebhookURL *string `json:"webhook_url,omitempty"`

	City  *string `json:"city,omitempty"`
	State *string `json:"state,omitempty"`

	AcceptsLeads bool `json:"accepts_leads" gorm:"default:true"`
	Active       bool `json:"active" gorm:"default:true"`

	// CreatedAt doubles as the default-dealership tiebreak: the oldest
	// active, lead-accepting dealership wins.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Dealership) TableName() string { return "dealerships" }

func (d *Dealership) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// HasWebhook reports whether the dealership has a webhook endpoint configured.
func (d *Dealership) HasWebhook() bool {
	return d.WebhookURL != nil && *d.WebhookURL != ""
}

// HasEmail reports whether the dealership has an email channel configured.
func (d *Dealership) HasEmail() bool {
	return d.Email != nil && *d.Email != ""
}
