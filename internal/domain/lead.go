package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadStatus represents the lifecycle stage of a lead.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusNegotiating LeadStatus = "negotiating"
	LeadStatusWon         LeadStatus = "won"
	LeadStatusLost        LeadStatus = "lost"
)

// Temperature classifies how ready a lead is to buy.
type Temperature string

const (
	TemperatureCold Temperature = "cold"
	TemperatureWarm Temperature = "warm"
	TemperatureHot  Temperature = "hot"
)

// Lead is a captured prospective customer plus attribution metadata.
type Lead struct {
	ID    uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name  string    `json:"name" gorm:"not null"`
	Email string    `json:"email"`
	Phone string    `json:"phone" gorm:"not null"`

	VehicleInterestID *uuid.UUID `json:"vehicle_interest_id,omitempty" gorm:"type:uuid;index"`
	VehicleInterest   *Vehicle   `json:"vehicle_interest,omitempty" gorm:"foreignKey:VehicleInterestID"`

	Origin string `json:"origin" gorm:"type:varchar(64);default:site"`

	// UTM attribution, captured by the intake form.
	UTMSource   *string `json:"utm_source,omitempty"`
	UTMMedium   *string `json:"utm_medium,omitempty"`
	UTMCampaign *string `json:"utm_campaign,omitempty"`
	UTMContent  *string `json:"utm_content,omitempty"`
	UTMTerm     *string `json:"utm_term,omitempty"`
	ReferrerURL *string `json:"referrer_url,omitempty"`
	LandingPage *string `json:"landing_page,omitempty"`

	// Estimated acquisition cost in BRL; nil when the source is unattributed.
	AcquisitionCost *float64 `json:"acquisition_cost,omitempty"`

	Status      LeadStatus  `json:"status" gorm:"type:varchar(16);default:new;index"`
	Temperature Temperature `json:"temperature" gorm:"type:varchar(8);default:cold"`
	Score       int         `json:"score" gorm:"default:0"`

	// Responsible dealership; nil until the lead is distributed. Once set it
	// is never overwritten by automatic re-distribution.
	DealershipID *uuid.UUID  `json:"dealership_id,omitempty" gorm:"type:uuid;index"`
	Dealership   *Dealership `json:"dealership,omitempty" gorm:"foreignKey:DealershipID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Lead) TableName() string { return "leads" }

func (l *Lead) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// IsDistributed reports whether a responsible dealership has been assigned.
func (l *Lead) IsDistributed() bool {
	return l.DealershipID != nil
}

// IsOpen reports whether the lead is still being worked.
func (l *Lead) IsOpen() bool {
	return l.Status != LeadStatusWon && l.Status != LeadStatusLost
}
