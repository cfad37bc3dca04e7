package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InteractionTypeSystem = "system"
	InteractionTypeManual = "manual"

	InteractionChannelAutomatic = "automatic"
	InteractionChannelPhone     = "phone"
	InteractionChannelEmail     = "email"
	InteractionChannelWhatsApp  = "whatsapp"

	InteractionSenderSystem = "system"
)

// Interaction is an append-only record of a communication attempt for a
// lead. The notification dispatcher writes one as the last-resort record
// when no active delivery channel exists.
type Interaction struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	LeadID  uuid.UUID `json:"lead_id" gorm:"type:uuid;not null;index"`
	Type    string    `json:"type" gorm:"type:varchar(16);not null"`
	Channel string    `json:"channel" gorm:"type:varchar(16);not null"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	Sender  string    `json:"sender" gorm:"type:varchar(64)"`

	CreatedAt time.Time `json:"created_at"`
}

func (Interaction) TableName() string { return "interactions" }

func (i *Interaction) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
