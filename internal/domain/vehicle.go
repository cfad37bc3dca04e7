package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle is a catalog entry, either owned by a dealership or imported
// from a scraping source.
type Vehicle struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Make         string    `json:"make" gorm:"not null;index"`
	Model        string    `json:"model" gorm:"not null;index"`
	Year         int       `json:"year" gorm:"not null"`
	Price        float64   `json:"price" gorm:"not null"`
	Mileage      int       `json:"mileage"`
	FuelType     string    `json:"fuel_type" gorm:"type:varchar(32)"`
	Transmission string    `json:"transmission" gorm:"type:varchar(32)"`
	Color        string    `json:"color,omitempty"`
	Photos       []string  `json:"photos" gorm:"serializer:json"`

	DealershipID *uuid.UUID  `json:"dealership_id,omitempty" gorm:"type:uuid;index"`
	Dealership   *Dealership `json:"dealership,omitempty" gorm:"foreignKey:DealershipID"`

	// Tag of the import pipeline the vehicle came from, used for lead
	// routing when there is no direct dealership link.
	ScrapingSource *string `json:"scraping_source,omitempty" gorm:"type:varchar(64);index"`

	Available bool `json:"available" gorm:"default:true"`
	Featured  bool `json:"featured" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Vehicle) TableName() string { return "vehicles" }

func (v *Vehicle) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
