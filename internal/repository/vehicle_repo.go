package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/domain"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// VehicleFilter narrows the public catalog listing.
type VehicleFilter struct {
	Make         string
	Model        string
	YearMin      int
	YearMax      int
	PriceMin     float64
	PriceMax     float64
	FuelType     string
	Transmission string
	Limit        int
	Offset       int
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Dealership").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context, f VehicleFilter) ([]domain.Vehicle, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Vehicle{}).Where("available = ?", true)

	if f.Make != "" {
		q = q.Where("LOWER(make) = ?", strings.ToLower(f.Make))
	}
	if f.Model != "" {
		q = q.Where("LOWER(model) LIKE ?", "%"+strings.ToLower(f.Model)+"%")
	}
	if f.YearMin > 0 {
		q = q.Where("year >= ?", f.YearMin)
	}
	if f.YearMax > 0 {
		q = q.Where("year <= ?", f.YearMax)
	}
	if f.PriceMin > 0 {
		q = q.Where("price >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		q = q.Where("price <= ?", f.PriceMax)
	}
	if f.FuelType != "" {
		q = q.Where("fuel_type = ?", f.FuelType)
	}
	if f.Transmission != "" {
		q = q.Where("transmission = ?", f.Transmission)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 60 {
		limit = 24
	}

	var vehicles []domain.Vehicle
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(f.Offset).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

func (r *VehicleRepository) Featured(ctx context.Context, limit int) ([]domain.Vehicle, error) {
	if limit <= 0 || limit > 24 {
		limit = 8
	}
	var vehicles []domain.Vehicle
	err := r.db.WithContext(ctx).
		Where("available = ? AND featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&vehicles).Error
	return vehicles, err
}
