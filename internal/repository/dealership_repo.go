package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/domain"
)

type DealershipRepository struct {
	db *gorm.DB
}

func NewDealershipRepository(db *gorm.DB) *DealershipRepository {
	return &DealershipRepository{db: db}
}

func (r *DealershipRepository) Create(ctx context.Context, d *domain.Dealership) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DealershipRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealership, error) {
	var d domain.Dealership
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DealershipRepository) GetBySlug(ctx context.Context, slug string) (*domain.Dealership, error) {
	var d domain.Dealership
	if err := r.db.WithContext(ctx).First(&d, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DealershipRepository) List(ctx context.Context, onlyActive bool) ([]domain.Dealership, error) {
	q := r.db.WithContext(ctx).Model(&domain.Dealership{})
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	var out []domain.Dealership
	err := q.Order("created_at ASC").Find(&out).Error
	return out, err
}

// OldestActive returns the oldest dealership that both accepts leads and
// is active, used as the default routing target.
func (r *DealershipRepository) OldestActive(ctx context.Context) (*domain.Dealership, error) {
	var d domain.Dealership
	err := r.db.WithContext(ctx).
		Where("accepts_leads = ? AND active = ?", true, true).
		Order("created_at ASC").
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DealershipRepository) Update(ctx context.Context, d *domain.Dealership) error {
	return r.db.WithContext(ctx).Save(d).Error
}
