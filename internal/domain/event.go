package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event types recorded by the tracking and distribution pipelines.
const (
	EventLeadCreated     = "lead_created"
	EventLeadDistributed = "lead_distributed"
	EventLeadNotified    = "lead_notified"
	EventPageView        = "page_view"
	EventVehicleView     = "vehicle_view"
	EventFormSubmit      = "form_submit"
	EventWhatsAppClick   = "whatsapp_click"
	EventCTAClick        = "cta_click"
)

// Event is an append-only analytics/audit record. Events are never
// updated or deleted.
type Event struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Type      string         `json:"type" gorm:"type:varchar(32);not null;index"`
	LeadID    *uuid.UUID     `json:"lead_id,omitempty" gorm:"type:uuid;index"`
	VehicleID *uuid.UUID     `json:"vehicle_id,omitempty" gorm:"type:uuid;index"`
	Params    map[string]any `json:"params,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Event) TableName() string { return "events" }

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
