package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/domain"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// LeadFilter narrows admin lead listings.
type LeadFilter struct {
	Status       *domain.LeadStatus
	DealershipID *uuid.UUID
	Limit        int
	Offset       int
}

func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var l domain.Lead
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// GetWithVehicleAndDealership loads the lead joined with its interest
// vehicle, that vehicle's owning dealership and the lead's responsible
// dealership, in one query chain.
func (r *LeadRepository) GetWithVehicleAndDealership(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var l domain.Lead
	err := r.db.WithContext(ctx).
		Preload("VehicleInterest").
		Preload("VehicleInterest.Dealership").
		Preload("Dealership").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepository) List(ctx context.Context, f LeadFilter) ([]domain.Lead, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Lead{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.DealershipID != nil {
		q = q.Where("dealership_id = ?", *f.DealershipID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var leads []domain.Lead
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(f.Offset).
		Preload("VehicleInterest").
		Preload("Dealership").
		Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// ListOpen returns leads that are still being worked, for the scoring job.
func (r *LeadRepository) ListOpen(ctx context.Context) ([]domain.Lead, error) {
	var leads []domain.Lead
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []domain.LeadStatus{domain.LeadStatusWon, domain.LeadStatusLost}).
		Find(&leads).Error
	return leads, err
}

// AssignDealership sets the responsible dealership with a conditional
// update so two concurrent distributions cannot both win: only the row
// with a still-unset dealership is touched. Returns false when another
// call already assigned the lead.
func (r *LeadRepository) AssignDealership(ctx context.Context, leadID, dealershipID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id = ? AND dealership_id IS NULL", leadID).
		Updates(map[string]any{
			"dealership_id": dealershipID,
			"status":        domain.LeadStatusNew,
			"updated_at":    time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

func (r *LeadRepository) UpdateScore(ctx context.Context, id uuid.UUID, score int, temp domain.Temperature) error {
	return r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id = ?", id).
		Updates(map[string]any{"score": score, "temperature": temp, "updated_at": time.Now()}).Error
}

func (r *LeadRepository) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error) {
	type row struct {
		Status domain.LeadStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[domain.LeadStatus]int64, len(rows))
	for _, rw := range rows {
		stats[rw.Status] = rw.Count
	}
	return stats, nil
}
